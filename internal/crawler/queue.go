// Package crawler walks league index pages and collects the links to the
// individual race pages.
package crawler

import (
	"net/url"
	"sync"
)

// URLQueue is a FIFO of URLs that refuses anything it has seen before.
type URLQueue struct {
	mu    sync.Mutex
	items []string
	seen  map[string]bool
}

// NewURLQueue creates an empty queue.
func NewURLQueue() *URLQueue {
	return &URLQueue{seen: make(map[string]bool)}
}

// Add enqueues rawURL unless it, or an equivalent URL, was added before.
func (q *URLQueue) Add(rawURL string) bool {
	u := normalizeURL(rawURL)
	if u == "" {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seen[u] {
		return false
	}
	q.seen[u] = true
	q.items = append(q.items, u)
	return true
}

// Pop removes and returns the oldest URL.
func (q *URLQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	u := q.items[0]
	q.items = q.items[1:]
	return u, true
}

// Len returns the number of queued URLs.
func (q *URLQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Seen reports whether rawURL was ever added.
func (q *URLQueue) Seen(rawURL string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen[normalizeURL(rawURL)]
}

// normalizeURL drops fragments and trailing slashes so that equivalent
// links compare equal. Relative or unparseable URLs yield "".
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	if len(u.Path) > 1 && u.Path[len(u.Path)-1] == '/' {
		u.Path = u.Path[:len(u.Path)-1]
	}
	return u.String()
}

// IsSameDomain reports whether both URLs point at the same host.
func IsSameDomain(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Host == ub.Host
}
