package output

import (
	"encoding/csv"
	"io"
)

// csvHeader is the fixed column order for CSV output.
var csvHeader = []string{"url", "title", "content"}

// CSVWriter writes records as CSV rows. The header row is written on
// creation and each record is flushed immediately, so partial output
// from an interrupted crawl is still a valid CSV file.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSV writer and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(csvHeader); err != nil {
		return nil, err
	}
	cw.w.Flush()
	return cw, cw.w.Error()
}

// Write appends one record as a CSV row. Quoting and escaping of commas,
// quotes and embedded newlines follow RFC 4180 via encoding/csv.
func (cw *CSVWriter) Write(rec Record) error {
	if err := cw.w.Write([]string{rec.URL, rec.Title, rec.Content}); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}

// Flush flushes buffered rows.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// Close flushes the writer.
func (cw *CSVWriter) Close() error {
	return cw.Flush()
}
