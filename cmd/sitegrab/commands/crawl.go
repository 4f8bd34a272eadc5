package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitegrab/sitegrab/internal/crawler"
	"github.com/sitegrab/sitegrab/internal/fetcher"
	"github.com/sitegrab/sitegrab/internal/logger"
	"github.com/sitegrab/sitegrab/internal/output"
	"github.com/sitegrab/sitegrab/pkg/cleaner"
)

// crawlOptions is the validated configuration for one crawl run.
type crawlOptions struct {
	BaseURL     string `validate:"required,url"`
	Exclude     []string
	MaxPages    int `validate:"min=0"`
	MaxURLs     int `validate:"min=0"`
	Concurrency int `validate:"min=1"`
	Threshold   int `validate:"min=2"`
	Delay       time.Duration
	Timeout     time.Duration `validate:"min=0"`
	MaxBodySize int           `validate:"min=0"`
	UserAgent   string
	NoClean     bool
	OutputPath  string
	Format      output.Format `validate:"oneof=csv json jsonl yaml"`
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a site and export page text",
	Long: `Crawl a website breadth-first from the base URL.

Every same-site page reachable from the base URL is fetched once. URLs
containing any exclusion substring are never fetched or followed. Each
page's title and text are extracted, repeated boilerplate is removed, and
one record per page is appended to the output file.

Examples:
  # Default exclusions skip binary documents
  sitegrab crawl -u "https://example.com/"

  # Exclude a whole section and keep only the first 100 pages
  sitegrab crawl -u "https://example.com/" -x "/en/" --max-pages 100`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	flags := crawlCmd.Flags()

	// Target
	flags.StringP("url", "u", "", "base URL to crawl (required)")
	flags.StringP("exclude", "x", ".pdf,.jpg,.docx", "comma-separated URL substrings to exclude")

	// Limits
	flags.Int("max-pages", 0, "max pages written to output (0 = unlimited)")
	flags.Int("max-urls", 0, "max fetch attempts (0 = unlimited)")

	// Fetch settings
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.Duration("delay", 0, "delay between requests")
	flags.IntP("concurrency", "c", 1, "concurrent fetches (1 = deterministic breadth-first order)")
	flags.String("user-agent", "", "custom User-Agent header")
	flags.String("max-body-size", "0", "max response body size (e.g. 1MB, 0 = unlimited)")

	// Cleaning settings
	flags.Int("repeat-threshold", cleaner.DefaultRepeatThreshold, "occurrences at which a line counts as boilerplate")
	flags.Bool("no-clean", false, "disable boilerplate removal")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: crawled_full_html_<timestamp>.<ext>)")
	flags.String("format", "csv", "output format: csv, json, jsonl, yaml")

	_ = crawlCmd.MarkFlagRequired("url")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts, err := parseCrawlOptions(cmd)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	f := fetcher.NewStatic(fetcher.Config{
		UserAgent:   opts.UserAgent,
		Timeout:     opts.Timeout,
		MaxBodySize: opts.MaxBodySize,
	})
	defer func() { _ = f.Close() }()

	var cl cleaner.Cleaner
	if opts.NoClean {
		cl = cleaner.NewNoop()
	} else {
		cl = cleaner.NewChain(
			cleaner.NewRepeat(opts.Threshold),
			cleaner.NewPattern(),
		)
	}
	logger.Debug("cleaner configured", "cleaner", cl.Name())

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = output.DefaultFilename(opts.Format, time.Now())
	}
	file, err := os.Create(outPath)
	if err != nil {
		logger.Error("failed to create output file", "path", outPath, "error", err)
		return err
	}
	defer func() { _ = file.Close() }()

	writer, err := output.NewWriter(file, opts.Format)
	if err != nil {
		return err
	}

	engine := crawler.New(f, cl, crawler.Config{
		Exclude:     opts.Exclude,
		MaxPages:    opts.MaxPages,
		MaxURLs:     opts.MaxURLs,
		Delay:       opts.Delay,
		Concurrency: opts.Concurrency,
	})

	logger.Info("starting crawl", "url", opts.BaseURL, "output", outPath, "format", opts.Format)

	results, err := engine.Crawl(ctx, opts.BaseURL)
	if err != nil {
		logger.Error("crawl failed to start", "error", err)
		return err
	}

	written := 0
	failed := 0
	for rec := range results {
		if rec.Err != nil {
			failed++
			continue
		}
		if err := writer.Write(output.Record{
			URL:     rec.URL,
			Title:   rec.Title,
			Content: rec.Content,
		}); err != nil {
			logger.Error("failed to write record", "url", rec.URL, "error", err)
			return err
		}
		written++
	}

	if err := writer.Close(); err != nil {
		return err
	}

	logger.Info("crawl complete", "pages", written, "failed", failed, "output", outPath)
	return nil
}

// parseCrawlOptions reads and validates the crawl flags. Validation
// failures are fatal: nothing is fetched with a broken configuration.
func parseCrawlOptions(cmd *cobra.Command) (crawlOptions, error) {
	flags := cmd.Flags()

	baseURL, _ := flags.GetString("url")
	excludeStr, _ := flags.GetString("exclude")
	maxPages, _ := flags.GetInt("max-pages")
	maxURLs, _ := flags.GetInt("max-urls")
	timeout, _ := flags.GetDuration("timeout")
	delay, _ := flags.GetDuration("delay")
	concurrency, _ := flags.GetInt("concurrency")
	userAgent, _ := flags.GetString("user-agent")
	maxBodyStr, _ := flags.GetString("max-body-size")
	threshold, _ := flags.GetInt("repeat-threshold")
	noClean, _ := flags.GetBool("no-clean")
	outputPath, _ := flags.GetString("output")
	format, _ := flags.GetString("format")

	var maxBodySize int
	if s := strings.TrimSpace(maxBodyStr); s != "" && s != "0" {
		bytes, err := humanize.ParseBytes(s)
		if err != nil {
			return crawlOptions{}, fmt.Errorf("invalid max-body-size %q: %w", maxBodyStr, err)
		}
		maxBodySize = int(bytes)
	}

	opts := crawlOptions{
		BaseURL:     baseURL,
		Exclude:     splitExclusions(excludeStr),
		MaxPages:    maxPages,
		MaxURLs:     maxURLs,
		Concurrency: concurrency,
		Threshold:   threshold,
		Delay:       delay,
		Timeout:     timeout,
		MaxBodySize: maxBodySize,
		UserAgent:   userAgent,
		NoClean:     noClean,
		OutputPath:  outputPath,
		Format:      output.Format(format),
	}

	if err := validator.New().Struct(opts); err != nil {
		return crawlOptions{}, fmt.Errorf("invalid crawl options: %w", err)
	}

	return opts, nil
}

// splitExclusions parses the comma-separated exclusion list, trimming
// whitespace and dropping empty entries.
func splitExclusions(s string) []string {
	var exclude []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			exclude = append(exclude, part)
		}
	}
	return exclude
}
