package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter buffers values and writes a single YAML document on Close.
type YAMLWriter struct {
	w     io.Writer
	items []any
}

// Write buffers a value.
func (w *YAMLWriter) Write(v any) error {
	w.items = append(w.items, v)
	return nil
}

// Close writes the buffered values.
func (w *YAMLWriter) Close() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)

	var err error
	switch len(w.items) {
	case 1:
		err = enc.Encode(w.items[0])
	case 0:
		err = enc.Encode([]any{})
	default:
		err = enc.Encode(w.items)
	}
	if err != nil {
		return err
	}
	return enc.Close()
}
