// Package fetcher handles web page fetching and content extraction.
package fetcher

import (
	"context"
	"time"
)

// PageContent represents fetched page data.
type PageContent struct {
	URL         string
	HTML        string
	Title       string
	Text        string   // Extracted readable text, one line per block
	Links       []string // Absolute outbound links found on the page
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// FetchOptions controls fetching behavior.
type FetchOptions struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // Max response body size in bytes (0 = colly default)
	Headers     map[string]string
}

// DefaultFetchOptions returns sensible defaults.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		UserAgent: "sitegrab/1.0 (+https://github.com/sitegrab/sitegrab)",
		Timeout:   30 * time.Second,
	}
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts FetchOptions) (PageContent, error)

	// Close releases any resources.
	Close() error

	// Type returns the fetcher kind, e.g. "static".
	Type() string
}

// Config holds common fetcher configuration.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: DefaultFetchOptions().UserAgent,
		Timeout:   DefaultFetchOptions().Timeout,
	}
}
