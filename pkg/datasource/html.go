package datasource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmylchreest/rowdata/internal/crawler"
	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/fetcher"
	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/race"
	"golang.org/x/sync/errgroup"
)

// HTMLSource parses results pages with CSS selectors. One page is one race.
type HTMLSource struct {
	cfg     Config
	fetcher fetcher.Fetcher
}

func newHTML(cfg Config, f fetcher.Fetcher) Datasource {
	return &HTMLSource{cfg: cfg, fetcher: f}
}

// Tag returns TagHTML.
func (s *HTMLSource) Tag() Tag { return TagHTML }

// Races parses source as a race page, or as an index of race pages when an
// index link selector or pattern is configured. Pages without participants
// are skipped.
func (s *HTMLSource) Races(ctx context.Context, source string) ([]race.Race, error) {
	pages := []string{source}
	if s.cfg.Index.LinkSelector != "" || s.cfg.Index.LinkPattern != "" {
		if s.fetcher == nil {
			return nil, fmt.Errorf("walk index %s: no fetcher configured", source)
		}
		links, err := crawler.Walk(ctx, s.fetcher, source, s.cfg.Index)
		if err != nil {
			if len(links) == 0 {
				return nil, err
			}
			logger.Warn("index walk incomplete", "url", source, "races", len(links), "error", err)
		}
		pages = links
	}

	results := make([]*race.Race, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.concurrency())
	for i, page := range pages {
		g.Go(func() error {
			data, err := load(gctx, s.fetcher, page)
			if err != nil {
				return err
			}
			r, err := s.parse(page, data)
			if errors.Is(err, ErrNoRaces) {
				logger.Warn("page skipped", "url", page, "error", err)
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	races := make([]race.Race, 0, len(results))
	for _, r := range results {
		if r != nil {
			races = append(races, *r)
		}
	}
	if len(races) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRaces)
	}
	return races, nil
}

func (s *HTMLSource) parse(pageURL string, data []byte) (*race.Race, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	sel := s.cfg.HTML

	r := &race.Race{
		Datasource: s.cfg.Name,
		URL:        pageURL,
		Name:       text(doc.Find(or(sel.Title, "title")).First()),
		Gender:     s.cfg.Gender,
		Category:   s.cfg.Category,
	}
	if sel.Date != "" {
		r.Date, _ = parseDate(text(doc.Find(sel.Date).First()), sel.DateLayout)
	} else {
		r.Date, _ = parseDate(r.Name, "")
	}
	if sel.Notes != "" {
		var notes []string
		doc.Find(sel.Notes).Each(func(_ int, n *goquery.Selection) {
			if t := text(n); t != "" {
				notes = append(notes, t)
			}
		})
		r.Notes = strings.Join(notes, " ")
	}

	doc.Find(sel.Rows).Each(func(_ int, row *goquery.Selection) {
		if row.Find("td").Length() == 0 {
			return
		}
		cells := row.ChildrenFiltered("td, th")
		cell := func(col int) string {
			if col < 1 || col > cells.Length() {
				return ""
			}
			return text(cells.Eq(col - 1))
		}
		if p, ok := newParticipant(cell(sel.Columns.Club)); ok {
			p.Series = atoi(cell(sel.Columns.Series))
			p.Lane = atoi(cell(sel.Columns.Lane))
			for _, col := range sel.Columns.Laps {
				if t, ok := laptime.Normalize(cell(col)); ok {
					p.Laps = append(p.Laps, t)
				}
			}
			if t, ok := laptime.Normalize(cell(sel.Columns.Time)); ok {
				p.Time = &t
			}
			r.Participants = append(r.Participants, p)
		}
	})

	if len(r.Participants) == 0 {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrNoRaces)
	}
	if err := finish(r); err != nil {
		return nil, err
	}
	return r, nil
}

// newParticipant canonicalizes a raw club cell.
func newParticipant(raw string) (race.Participant, bool) {
	raw = strings.Join(strings.Fields(raw), " ")
	name := club.Normalize(raw)
	if name == "" {
		return race.Participant{}, false
	}
	return race.Participant{Club: name, RawName: raw}, true
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
