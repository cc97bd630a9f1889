// Package export serializes reports to JSON, CSV and Markdown and writes
// them to files.
package export

import (
	"encoding/json"
	"io"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// MarshalJSON renders v as pretty-printed JSON with a 2-space indent and a
// trailing newline. Timestamps render as RFC 3339.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteJSON writes v to w as pretty-printed JSON.
func WriteJSON(w io.Writer, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
