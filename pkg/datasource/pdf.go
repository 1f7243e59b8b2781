package datasource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jmylchreest/rowdata/pkg/fetcher"
	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/race"
	"github.com/ledongthuc/pdf"
)

// PDFSource parses results sheets exported to PDF. A document is one race.
type PDFSource struct {
	cfg     Config
	fetcher fetcher.Fetcher
}

func newPDF(cfg Config, f fetcher.Fetcher) Datasource {
	return &PDFSource{cfg: cfg, fetcher: f}
}

// Tag returns TagPDF.
func (s *PDFSource) Tag() Tag { return TagPDF }

// Races extracts the plain text of the document at source and parses it.
func (s *PDFSource) Races(ctx context.Context, source string) ([]race.Race, error) {
	data, err := load(ctx, s.fetcher, source)
	if err != nil {
		return nil, err
	}
	text, err := plainText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	r, ok := s.parseText(strings.Split(text, "\n"))
	if !ok {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRaces)
	}
	r.URL = source
	if err := finish(&r); err != nil {
		return nil, err
	}
	return []race.Race{r}, nil
}

func plainText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}
	return buf.String(), nil
}

var (
	// lane, club, then laps and finish time, optionally ending in a status.
	pdfRow = regexp.MustCompile(
		`^(\d{1,2})\s+(\D.*?)((?:\s+[:\d][\d:.,']*)*)(?:\s+(DSQ|DESC|RET|NP|NSP))?$`)
	pdfSeries = regexp.MustCompile(`(?i)^TANDA\s+(\d+)`)
)

// parseText reads the lines of a results sheet: the first line is the race
// name, rows are "lane club lap… time", and everything from a NOTA: or
// OBSERVACIONES: line onwards is the race note.
func (s *PDFSource) parseText(lines []string) (race.Race, bool) {
	r := race.Race{
		Datasource: s.cfg.Name,
		Gender:     s.cfg.Gender,
		Category:   s.cfg.Category,
	}

	var notes []string
	series, inNotes := 0, false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if notePrefix.MatchString(line) {
			inNotes = true
			line = notePrefix.ReplaceAllString(line, "")
		}
		if inNotes {
			if line != "" {
				notes = append(notes, line)
			}
			continue
		}

		if r.Name == "" {
			r.Name = line
			r.Date, _ = parseDate(line, "")
			continue
		}
		if r.Date.IsZero() {
			if d, ok := parseDate(line, ""); ok {
				r.Date = d
				continue
			}
		}
		if m := pdfSeries.FindStringSubmatch(line); m != nil {
			series = atoi(m[1])
			continue
		}

		m := pdfRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		p, ok := newParticipant(m[2])
		if !ok {
			continue
		}
		p.Lane = atoi(m[1])
		p.Series = series

		times := strings.Fields(m[3])
		for i, raw := range times {
			t, ok := laptime.Normalize(raw)
			if !ok {
				continue
			}
			if i == len(times)-1 && m[4] == "" {
				p.Time = &t
			} else {
				p.Laps = append(p.Laps, t)
			}
		}
		switch m[4] {
		case "RET":
			p.Retired = true
		case "NP", "NSP":
			p.Absent = true
		}
		r.Participants = append(r.Participants, p)
	}

	if len(r.Participants) == 0 {
		return race.Race{}, false
	}
	r.Notes = strings.Join(notes, " ")
	return r, true
}
