package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sitegrab/sitegrab/internal/fetcher"
	"github.com/sitegrab/sitegrab/internal/logger"
	"github.com/sitegrab/sitegrab/pkg/cleaner"
)

// Record is one crawled page. Err is set when the fetch failed; such
// records carry no title or content and are not written to the output.
type Record struct {
	URL           string
	Title         string
	Content       string
	FetchedAt     time.Time
	FetchDuration time.Duration
	Err           error
}

// Config holds crawl engine configuration.
type Config struct {
	// Exclusion
	Exclude []string // URLs containing any of these substrings are skipped

	// Limits
	MaxPages int // Max records emitted (0 = unlimited)
	MaxURLs  int // Max fetch attempts (0 = unlimited)

	// Rate limiting
	Delay       time.Duration // Delay before each request
	Concurrency int           // Concurrent fetches; 1 gives deterministic breadth-first order
}

// DefaultConfig returns sensible crawler defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency: 1,
	}
}

// Engine orchestrates the breadth-first crawl: frontier and visited set,
// fetching, exclusion filtering, content cleaning and record emission.
type Engine struct {
	fetcher fetcher.Fetcher
	cleaner cleaner.Cleaner
	config  Config
}

// New creates a new crawl engine. A nil cleaner disables cleaning.
func New(f fetcher.Fetcher, cl cleaner.Cleaner, cfg Config) *Engine {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cl == nil {
		cl = cleaner.NewNoop()
	}
	return &Engine{
		fetcher: f,
		cleaner: cl,
		config:  cfg,
	}
}

// Crawl starts crawling from baseURL and returns records incrementally
// over a channel. Only URLs on the base URL's host are ever visited; an
// excluded URL is neither fetched nor traversed. The channel closes when
// the frontier drains, a limit is reached, or ctx is cancelled.
func (e *Engine) Crawl(ctx context.Context, baseURL string) (<-chan Record, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute http(s): %q", baseURL)
	}
	base := NormalizeURL(baseURL)

	results := make(chan Record, 100)

	go func() {
		defer close(results)
		e.crawl(ctx, base, results)
	}()

	return results, nil
}

func (e *Engine) crawl(ctx context.Context, base string, results chan<- Record) {
	logger.Debug("crawler starting",
		"base", base,
		"exclude", e.config.Exclude,
		"max_pages", e.config.MaxPages,
		"max_urls", e.config.MaxURLs,
		"concurrency", e.config.Concurrency,
		"delay", e.config.Delay)

	queue := NewURLQueue()
	if !e.enqueue(queue, base, base) {
		logger.Warn("base URL rejected by exclusion list", "url", base)
		return
	}

	// Fetch attempts, owned by this loop; successful emissions, shared
	// with the workers.
	processed := 0
	var emitted atomic.Int64

	sem := make(chan struct{}, e.config.Concurrency)
	var wg sync.WaitGroup

	for {
		if ctx.Err() != nil {
			wg.Wait()
			return
		}

		// Acquire a worker slot first: at concurrency 1 this means the
		// previous page finished, so the limit checks below see final
		// counts and output order stays breadth-first.
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		release := func() { <-sem }

		if e.config.MaxURLs > 0 && processed >= e.config.MaxURLs {
			logger.Debug("crawler reached max URLs limit", "max_urls", e.config.MaxURLs)
			release()
			wg.Wait()
			return
		}
		if e.config.MaxPages > 0 && int(emitted.Load()) >= e.config.MaxPages {
			logger.Debug("crawler reached max pages limit", "max_pages", e.config.MaxPages)
			release()
			wg.Wait()
			return
		}

		currentURL, ok := queue.Pop()
		if !ok {
			// Queue empty, wait for in-flight requests to add links
			release()
			wg.Wait()
			if queue.Len() == 0 {
				return
			}
			continue
		}

		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()
			defer release()

			if e.config.Delay > 0 {
				time.Sleep(e.config.Delay)
			}

			e.processURL(ctx, pageURL, base, queue, &emitted, results)
		}(currentURL)

		processed++
	}
}

func (e *Engine) processURL(
	ctx context.Context,
	pageURL string,
	base string,
	queue *URLQueue,
	emitted *atomic.Int64,
	results chan<- Record,
) {
	logger.Debug("crawler processing URL", "url", pageURL)

	fetchStart := time.Now()
	// Zero options defer to the fetcher's own configuration.
	content, err := e.fetcher.Fetch(ctx, pageURL, fetcher.FetchOptions{})
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		logger.Info("fetch failed", "url", pageURL, "error", err, "duration", fetchDuration)
		send(ctx, results, Record{URL: pageURL, Err: fmt.Errorf("fetch error: %w", err), FetchDuration: fetchDuration})
		return
	}

	logger.Debug("crawler fetch complete",
		"url", pageURL,
		"status", content.StatusCode,
		"text_size", len(content.Text),
		"links_count", len(content.Links))

	cleaned, err := e.cleaner.Clean(content.Text)
	if err != nil {
		logger.Info("cleaning failed", "url", pageURL, "error", err)
		send(ctx, results, Record{URL: pageURL, Err: fmt.Errorf("clean error: %w", err), FetchedAt: content.FetchedAt, FetchDuration: fetchDuration})
		return
	}

	logger.Info("crawled",
		"url", pageURL,
		"title", content.Title,
		"fetch", fetchDuration.Round(time.Millisecond))

	if !send(ctx, results, Record{
		URL:           pageURL,
		Title:         content.Title,
		Content:       cleaned,
		FetchedAt:     content.FetchedAt,
		FetchDuration: fetchDuration,
	}) {
		return
	}
	emitted.Add(1)

	added := 0
	for _, link := range content.Links {
		if e.enqueue(queue, link, base) {
			added++
		}
	}
	if added > 0 {
		logger.Debug("crawler enqueued links", "from", pageURL, "count", added)
	}
}

// send delivers a record unless the crawl has been cancelled, so workers
// never block on a consumer that stopped reading.
func send(ctx context.Context, results chan<- Record, rec Record) bool {
	select {
	case results <- rec:
		return true
	case <-ctx.Done():
		return false
	}
}

// enqueue applies the traversal policy before adding a URL to the
// frontier: cross-host links are never followed, and an excluded URL is
// dropped entirely so it is never fetched or traversed.
func (e *Engine) enqueue(queue *URLQueue, rawURL, base string) bool {
	if !IsSameHost(base, rawURL) {
		return false
	}
	if Excluded(rawURL, e.config.Exclude) {
		return false
	}
	return queue.Add(rawURL)
}
