// Package fetcher retrieves result pages, spreadsheets and PDFs published
// by the rowing leagues. Implement Fetcher to plug in custom transports
// (authenticated portals, archives, test fakes).
package fetcher

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Fetcher abstracts how documents are retrieved.
type Fetcher interface {
	// Fetch retrieves a document from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static").
	Type() string
}

// Options overrides fetcher defaults for one request.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content is a fetched document. Title, Text and Links are only filled for
// HTML responses.
type Content struct {
	URL         string
	Body        []byte
	HTML        string
	Text        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
	Links       []string
}

// IsHTML reports whether the response declared an HTML content type.
func (c Content) IsHTML() bool {
	return strings.Contains(strings.ToLower(c.ContentType), "html")
}

// Check with errors.Is(err, fetcher.ErrStatus).
var (
	// ErrStatus indicates a non-2xx response.
	ErrStatus = errors.New("unexpected status code")
	// ErrEmptyBody indicates a successful response with no content.
	ErrEmptyBody = errors.New("empty response body")
)
