package crawler

import (
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const indexPage = `<html><body>
<table class="regatas">
  <tr><td><a href="/regata/101">Bandera de Orio</a></td></tr>
  <tr><td><a href="regata/102#top">Bandera de Zarautz</a></td></tr>
  <tr><td><a href="/regata/101">Bandera de Orio (repetida)</a></td></tr>
  <tr><td><a href="#">Sin enlace</a></td></tr>
  <tr><td><a href="javascript:void(0)">Popup</a></td></tr>
  <tr><td><a href="/noticias/5">Noticia</a></td></tr>
</table>
<div class="pager"><a href="#">Anterior</a><a class="next" href="?page=2">Siguiente</a></div>
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

// --- LinkSelector Tests ---

func TestLinkSelector_Extract(t *testing.T) {
	base := "https://act.example/temporada/"

	tests := []struct {
		name     string
		selector string
		pattern  string
		want     []string
	}{
		{
			name: "all_anchors",
			want: []string{
				"https://act.example/regata/101",
				"https://act.example/temporada/regata/102",
				"https://act.example/noticias/5",
				"https://act.example/temporada/?page=2",
			},
		},
		{
			name:     "css_selector",
			selector: "table.regatas a",
			want: []string{
				"https://act.example/regata/101",
				"https://act.example/temporada/regata/102",
				"https://act.example/noticias/5",
			},
		},
		{
			name:     "url_pattern",
			selector: "table.regatas a",
			pattern:  `/regata/\d+$`,
			want: []string{
				"https://act.example/regata/101",
				"https://act.example/temporada/regata/102",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, err := NewLinkSelector(tt.selector, tt.pattern)
			if err != nil {
				t.Fatalf("NewLinkSelector() error = %v", err)
			}
			got := ls.Extract(parse(t, indexPage), base)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLinkSelector_InvalidPattern(t *testing.T) {
	if _, err := NewLinkSelector("", "[unclosed"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

// --- PaginationSelector Tests ---

func TestPaginationSelector_Find(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     string
		found    bool
	}{
		{"next_link", "a.next", "https://act.example/temporada/?page=2", true},
		{"skips_unusable_matches", ".pager a", "https://act.example/temporada/?page=2", true},
		{"no_match", "a.last", "", false},
		{"empty_selector", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewPaginationSelector(tt.selector).Find(parse(t, indexPage), "https://act.example/temporada/")
			if got != tt.want || ok != tt.found {
				t.Errorf("Find() = %q, %v, want %q, %v", got, ok, tt.want, tt.found)
			}
		})
	}
}
