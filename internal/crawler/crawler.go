package crawler

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/pkg/fetcher"
)

// Config controls how an index is walked.
type Config struct {
	// LinkSelector is the CSS selector of race links; empty means every anchor.
	LinkSelector string `mapstructure:"link_selector" yaml:"link_selector"`
	// LinkPattern is a regex race links must match.
	LinkPattern string `mapstructure:"link_pattern" yaml:"link_pattern"`
	// NextSelector is the CSS selector of the next index page.
	NextSelector string `mapstructure:"next_selector" yaml:"next_selector"`
	// MaxPages caps the index pages fetched; 0 means unlimited.
	MaxPages       int  `mapstructure:"max_pages" yaml:"max_pages"`
	SameDomainOnly bool `mapstructure:"same_domain_only" yaml:"same_domain_only"`
}

// Walk fetches seed and every index page reachable through the next-page
// selector, and returns the race links found on them in discovery order.
// Links found before a failure are returned together with the error.
func Walk(ctx context.Context, f fetcher.Fetcher, seed string, cfg Config) ([]string, error) {
	links, err := NewLinkSelector(cfg.LinkSelector, cfg.LinkPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid link pattern: %w", err)
	}
	next := NewPaginationSelector(cfg.NextSelector)

	pages := NewURLQueue()
	if !pages.Add(seed) {
		return nil, fmt.Errorf("invalid index url %q", seed)
	}
	found := NewURLQueue()

	var races []string
	for visited := 0; cfg.MaxPages == 0 || visited < cfg.MaxPages; visited++ {
		page, ok := pages.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return races, err
		}

		content, err := f.Fetch(ctx, page, fetcher.Options{})
		if err != nil {
			return races, fmt.Errorf("index page %s: %w", page, err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content.Body))
		if err != nil {
			return races, fmt.Errorf("parse index page %s: %w", page, err)
		}

		added := 0
		for _, link := range links.Extract(doc, page) {
			if cfg.SameDomainOnly && !IsSameDomain(page, link) {
				continue
			}
			if found.Add(link) {
				races = append(races, normalizeURL(link))
				added++
			}
		}
		logger.Debug("index page walked", "url", page, "races", added)

		if u, ok := next.Find(doc, page); ok && pages.Add(u) {
			logger.Debug("next index page", "url", u)
		}
	}
	return races, nil
}
