// Package output handles output formatting and writing.
package output

import (
	"fmt"
	"io"
	"time"
)

// Record is one output row: a crawled page.
type Record struct {
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec Record) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w)
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the filename extension for a format.
func Extension(format Format) string {
	return "." + string(format)
}

// DefaultFilename builds the default timestamped output filename, e.g.
// crawled_full_html_20260830_120000.csv.
func DefaultFilename(format Format, now time.Time) string {
	return "crawled_full_html_" + now.Format("20060102_150405") + Extension(format)
}
