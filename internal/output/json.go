package output

import (
	"encoding/json"
	"io"
)

// JSONWriter buffers values and writes them as one JSON document on Close:
// the value itself when there is exactly one, an array otherwise.
type JSONWriter struct {
	w      io.Writer
	indent string
	items  []any
}

// Write buffers a value.
func (w *JSONWriter) Write(v any) error {
	w.items = append(w.items, v)
	return nil
}

// Close writes the buffered values.
func (w *JSONWriter) Close() error {
	enc := json.NewEncoder(w.w)
	enc.SetIndent("", w.indent)
	enc.SetEscapeHTML(false)
	if len(w.items) == 1 {
		return enc.Encode(w.items[0])
	}
	if w.items == nil {
		return enc.Encode([]any{})
	}
	return enc.Encode(w.items)
}

// JSONLWriter writes one compact JSON document per line as values arrive.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{enc: enc}
}

// Write encodes v on its own line.
func (w *JSONLWriter) Write(v any) error {
	return w.enc.Encode(v)
}

// Close is a no-op; lines are written immediately.
func (w *JSONLWriter) Close() error {
	return nil
}
