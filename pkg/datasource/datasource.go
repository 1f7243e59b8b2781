// Package datasource turns the documents published by rowing leagues
// (results pages, spreadsheets, PDFs) into races.
//
// Every datasource canonicalizes club names and lap times and folds the
// race notes into the participants before returning a race.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/pkg/fetcher"
	"github.com/jmylchreest/rowdata/pkg/penalty"
	"github.com/jmylchreest/rowdata/pkg/race"
)

// Tag identifies the document format a datasource parses.
type Tag string

const (
	TagHTML Tag = "html"
	TagXLSX Tag = "xlsx"
	TagPDF  Tag = "pdf"
)

// Tags lists the supported tags, for flag help.
var Tags = []Tag{TagHTML, TagXLSX, TagPDF}

// Datasource extracts races from a source document.
type Datasource interface {
	// Tag returns the document format this datasource parses.
	Tag() Tag

	// Races parses every race reachable from source, a URL or a local path.
	Races(ctx context.Context, source string) ([]race.Race, error)
}

var (
	// ErrUnknownTag is returned by New for a tag without a constructor.
	ErrUnknownTag = errors.New("unknown datasource tag")
	// ErrNoRaces is returned when a document holds no recognizable race.
	ErrNoRaces = errors.New("no races found")
)

type constructor func(cfg Config, f fetcher.Fetcher) Datasource

var constructors = map[Tag]constructor{
	TagHTML: newHTML,
	TagXLSX: newXLSX,
	TagPDF:  newPDF,
}

// New validates cfg and creates the datasource for its tag. The fetcher is
// used for http(s) sources; it may be nil when only local files are read.
func New(cfg Config, f fetcher.Fetcher) (Datasource, error) {
	ctor, ok := constructors[cfg.Tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, cfg.Tag)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = string(cfg.Tag)
	}
	return ctor(cfg, f), nil
}

// load reads source from disk, or through the fetcher when it is a URL.
func load(ctx context.Context, f fetcher.Fetcher, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			if f == nil {
				return nil, fmt.Errorf("fetch %s: no fetcher configured", source)
			}
			content, err := f.Fetch(ctx, source, fetcher.Options{})
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", source, err)
			}
			return content.Body, nil
		case "file":
			source = u.Path
		}
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

// finish folds the race notes into the participants. A note the engine
// cannot assign consistently fails the race instead of the whole run.
func finish(r *race.Race) (err error) {
	defer func() {
		if v := recover(); v != nil {
			var ce *penalty.ConsistencyError
			if e, ok := v.(error); ok && errors.As(e, &ce) {
				err = fmt.Errorf("race %q: %w", r.Name, ce)
				return
			}
			panic(v)
		}
	}()

	r.ApplyNote()
	logger.Datasource(r.Datasource).Debug("race parsed",
		"race", r.Name,
		"participants", len(r.Participants),
		"cancelled", r.Cancelled)
	return nil
}

var numericDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

// parseDate reads a date with layout, or finds a dd/mm/yyyy date anywhere
// in text when layout is empty.
func parseDate(text, layout string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if layout != "" {
		t, err := time.Parse(layout, text)
		return t, err == nil
	}

	m := numericDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// atoi parses a small positive number out of a cell, ignoring anything that
// is not a digit ("Calle 3", "3ª").
func atoi(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	n, _ := strconv.Atoi(digits)
	return n
}
