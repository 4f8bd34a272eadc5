package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// --- NewWriter Factory Tests ---

func TestNewWriter_Formats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "*output.CSVWriter"},
		{FormatJSON, "*output.JSONWriter"},
		{FormatJSONL, "*output.JSONLWriter"},
		{FormatYAML, "*output.YAMLWriter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := NewWriter(buf, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			// Loose type name check keeps the factory honest.
			if got := typeName(w); got != tt.want {
				t.Errorf("NewWriter(%s) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *CSVWriter:
		return "*output.CSVWriter"
	case *JSONWriter:
		return "*output.JSONWriter"
	case *JSONLWriter:
		return "*output.JSONLWriter"
	case *YAMLWriter:
		return "*output.YAMLWriter"
	default:
		return "unknown"
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	if _, err := NewWriter(buf, Format("xml")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

// --- CSVWriter Tests ---

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewCSVWriter(buf)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	if err := w.Write(Record{URL: "https://example.com/", Title: "Home", Content: "hello"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "url" || rows[0][1] != "title" || rows[0][2] != "content" {
		t.Errorf("header = %v, want [url title content]", rows[0])
	}
	if rows[1][0] != "https://example.com/" || rows[1][1] != "Home" || rows[1][2] != "hello" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestCSVWriter_EscapesSpecialCharacters(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewCSVWriter(buf)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	rec := Record{
		URL:     "https://example.com/a,b",
		Title:   `He said "hi"`,
		Content: "line one\nline two, with comma",
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if rows[1][0] != rec.URL || rows[1][1] != rec.Title || rows[1][2] != rec.Content {
		t.Errorf("round-tripped row = %v, want %v", rows[1], rec)
	}
}

func TestCSVWriter_IncrementalFlush(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewCSVWriter(buf)
	if err != nil {
		t.Fatalf("NewCSVWriter() error = %v", err)
	}

	_ = w.Write(Record{URL: "https://example.com/", Title: "t", Content: "c"})

	// The row must be visible before Close: partial output from an
	// interrupted crawl stays valid.
	if !strings.Contains(buf.String(), "https://example.com/") {
		t.Error("row should be flushed immediately after Write")
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_Array(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	_ = w.Write(Record{URL: "https://example.com/1", Title: "One"})
	_ = w.Write(Record{URL: "https://example.com/2", Title: "Two"})
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var records []Record
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 2 || records[0].Title != "One" || records[1].Title != "Two" {
		t.Errorf("records = %v", records)
	}
}

func TestJSONWriter_EmptyIsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty output = %q, want []", buf.String())
	}
}

// --- JSONLWriter Tests ---

func TestJSONLWriter_LinePerRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	_ = w.Write(Record{URL: "https://example.com/1"})
	_ = w.Write(Record{URL: "https://example.com/2"})
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %q is not valid JSON: %v", line, err)
		}
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter_Sequence(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	_ = w.Write(Record{URL: "https://example.com/", Title: "Home", Content: "text"})
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var records []Record
	if err := yaml.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Home" {
		t.Errorf("records = %v", records)
	}
}

// --- Filename Tests ---

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "crawled_full_html_20260830_140509.csv"},
		{FormatJSON, "crawled_full_html_20260830_140509.json"},
		{FormatJSONL, "crawled_full_html_20260830_140509.jsonl"},
		{FormatYAML, "crawled_full_html_20260830_140509.yaml"},
	}

	for _, tt := range tests {
		if got := DefaultFilename(tt.format, now); got != tt.want {
			t.Errorf("DefaultFilename(%s) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
