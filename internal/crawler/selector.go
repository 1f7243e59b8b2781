package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkSelector picks race links out of an index page.
type LinkSelector struct {
	CSSSelector string
	URLPattern  *regexp.Regexp
}

// NewLinkSelector creates a link selector. An empty CSS selector means
// every anchor; an empty pattern accepts every URL.
func NewLinkSelector(cssSelector, urlPattern string) (*LinkSelector, error) {
	ls := &LinkSelector{CSSSelector: cssSelector}
	if ls.CSSSelector == "" {
		ls.CSSSelector = "a[href]"
	}
	if urlPattern != "" {
		p, err := regexp.Compile(urlPattern)
		if err != nil {
			return nil, err
		}
		ls.URLPattern = p
	}
	return ls, nil
}

// Extract returns the absolute, deduplicated links matched on doc, in
// document order.
func (ls *LinkSelector) Extract(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find(ls.CSSSelector).Each(func(_ int, s *goquery.Selection) {
		link, ok := resolve(base, s)
		if !ok || seen[link] {
			return
		}
		if ls.URLPattern != nil && !ls.URLPattern.MatchString(link) {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}

// PaginationSelector finds the "next page" link of an index page.
type PaginationSelector struct {
	NextSelector string
}

// NewPaginationSelector creates a pagination selector.
func NewPaginationSelector(nextSelector string) *PaginationSelector {
	return &PaginationSelector{NextSelector: nextSelector}
}

// Find returns the first usable link matched by the selector.
func (ps *PaginationSelector) Find(doc *goquery.Document, baseURL string) (string, bool) {
	if ps == nil || ps.NextSelector == "" {
		return "", false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}

	var next string
	doc.Find(ps.NextSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link, ok := resolve(base, s)
		if ok {
			next = link
		}
		return !ok
	})
	return next, next != ""
}

// resolve turns the href of s into an absolute URL without fragment.
func resolve(base *url.URL, s *goquery.Selection) (string, bool) {
	href, _ := s.Attr("href")
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u = base.ResolveReference(u)
	u.Fragment = ""
	return u.String(), true
}
