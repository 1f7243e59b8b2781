// Package output serializes races and note classifications.
package output

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// Formats lists the supported formats, for flag help.
var Formats = []Format{FormatJSON, FormatJSONL, FormatYAML, FormatCSV}

// ErrUnsupportedValue is returned by writers that only understand some
// value types, such as CSV.
var ErrUnsupportedValue = errors.New("value not supported by this format")

// Writer serializes a stream of values.
type Writer interface {
	// Write adds one value. Buffered formats emit on Close.
	Write(v any) error

	// Close emits anything still buffered. It does not close the
	// underlying io.Writer.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	indent string
}

// WithIndent sets the indentation of JSON output; empty means compact.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported output format %q (want one of %v)", s, Formats)
	}
	return f, nil
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return &JSONWriter{w: w, indent: cfg.indent}, nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return &YAMLWriter{w: w}, nil
	case FormatCSV:
		return NewCSVWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
