package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/gocolly/colly/v2"
	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/internal/version"
	"golang.org/x/time/rate"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int           // bytes; 0 means colly's default
	RateLimit   time.Duration // minimum interval between requests; 0 disables
}

// DefaultStaticConfig returns sensible defaults. League sites are small and
// old, so requests are spaced out by default.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent:   version.UserAgent(),
		Timeout:     30 * time.Second,
		MaxBodySize: 20 * 1024 * 1024,
		RateLimit:   500 * time.Millisecond,
	}
}

// StaticFetcher retrieves documents with colly. It is safe for concurrent
// use; all requests share one rate limiter.
type StaticFetcher struct {
	config  StaticConfig
	limiter *rate.Limiter
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	def := DefaultStaticConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(cfg.RateLimit)
	}
	return &StaticFetcher{
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Fetch retrieves a document using colly.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	result := Content{URL: targetURL}

	if err := f.limiter.Wait(ctx); err != nil {
		return result, fmt.Errorf("rate limiter: %w", err)
	}

	collectorOpts := []colly.CollectorOption{
		colly.UserAgent(coalesce(opts.UserAgent, f.config.UserAgent)),
		colly.StdlibContext(ctx),
	}
	if f.config.MaxBodySize > 0 {
		collectorOpts = append(collectorOpts, colly.MaxBodySize(f.config.MaxBodySize))
	}
	c := colly.NewCollector(collectorOpts...)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.Body = r.Body
		logger.DebugContext(ctx, "fetched",
			"url", targetURL,
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"size", humanize.Bytes(uint64(len(r.Body))))
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode >= 300 {
			result.StatusCode = r.StatusCode
			fetchErr = fmt.Errorf("%w: %d from %s", ErrStatus, r.StatusCode, targetURL)
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", targetURL, err)
	})

	result.FetchedAt = time.Now()
	visitErr := c.Visit(targetURL)
	if fetchErr != nil {
		return result, fetchErr
	}
	if visitErr != nil {
		return result, fmt.Errorf("visit %s: %w", targetURL, visitErr)
	}
	if len(result.Body) == 0 {
		return result, fmt.Errorf("%w: %s", ErrEmptyBody, targetURL)
	}

	if result.IsHTML() {
		result.HTML = string(result.Body)
		if err := parseContent(&result); err != nil {
			return result, fmt.Errorf("parse %s: %w", targetURL, err)
		}
	}
	return result, nil
}

// parseContent extracts the title, visible text and absolute links.
func parseContent(content *Content) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content.Body))
	if err != nil {
		return err
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, noscript, iframe, svg").Remove()
	content.Text = strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	base, _ := url.Parse(content.URL)
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		link, err := url.Parse(href)
		if err != nil {
			return
		}
		if base != nil {
			link = base.ResolveReference(link)
		}
		link.Fragment = ""
		if abs := link.String(); !seen[abs] {
			seen[abs] = true
			content.Links = append(content.Links, abs)
		}
	})
	return nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
