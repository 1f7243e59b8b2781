package datasource

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/pkg/fetcher"
	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/race"
	"github.com/xuri/excelize/v2"
)

// XLSXSource parses results workbooks. Every sheet with a results table is
// one race.
type XLSXSource struct {
	cfg     Config
	fetcher fetcher.Fetcher
}

func newXLSX(cfg Config, f fetcher.Fetcher) Datasource {
	return &XLSXSource{cfg: cfg, fetcher: f}
}

// Tag returns TagXLSX.
func (s *XLSXSource) Tag() Tag { return TagXLSX }

// Races parses every sheet of the workbook at source.
func (s *XLSXSource) Races(ctx context.Context, source string) ([]race.Race, error) {
	data, err := load(ctx, s.fetcher, source)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", source, err)
	}
	defer f.Close()

	var races []race.Race
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to get rows of sheet %q: %w", sheet, err)
		}
		r, ok := s.parseSheet(sheet, rows)
		if !ok {
			logger.Debug("sheet without results table skipped", "sheet", sheet)
			continue
		}
		r.URL = source
		if err := finish(&r); err != nil {
			return nil, err
		}
		races = append(races, r)
	}

	if len(races) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoRaces)
	}
	return races, nil
}

// sheetColumns holds 0-based column indices; -1 means absent.
type sheetColumns struct {
	club   int
	lane   int
	series int
	laps   []int
	time   int
	notes  int
}

var notePrefix = regexp.MustCompile(`(?i)^\s*(?:NOTAS?|OBSERVACI[OÓ]N(?:ES)?)\b\s*:?\s*`)

func (s *XLSXSource) parseSheet(sheet string, rows [][]string) (race.Race, bool) {
	r := race.Race{
		Datasource: s.cfg.Name,
		Gender:     s.cfg.Gender,
		Category:   s.cfg.Category,
	}

	header := -1
	var cols sheetColumns
	for i, row := range rows {
		if c, ok := findSheetColumns(row); ok {
			header, cols = i, c
			break
		}
		// Rows above the table carry the race name and date.
		for _, cell := range row {
			cell = strings.Join(strings.Fields(cell), " ")
			if cell == "" {
				continue
			}
			if r.Name == "" {
				r.Name = cell
			}
			if r.Date.IsZero() {
				r.Date, _ = parseDate(cell, "")
			}
		}
	}
	if header < 0 {
		return race.Race{}, false
	}
	if r.Name == "" {
		r.Name = sheet
	}

	var notes []string
	inNotes := false
	for _, row := range rows[header+1:] {
		if isEmptyRow(row) {
			continue
		}
		first := firstCell(row)
		if notePrefix.MatchString(first) {
			inNotes = true
		}
		if inNotes {
			for _, cell := range row {
				if cell = strings.TrimSpace(notePrefix.ReplaceAllString(cell, "")); cell != "" {
					notes = append(notes, cell)
				}
			}
			continue
		}

		p, ok := newParticipant(cellAt(row, cols.club))
		if !ok {
			continue
		}
		p.Lane = atoi(cellAt(row, cols.lane))
		p.Series = atoi(cellAt(row, cols.series))
		for _, col := range cols.laps {
			if t, ok := laptime.Normalize(cellAt(row, col)); ok {
				p.Laps = append(p.Laps, t)
			}
		}
		if t, ok := laptime.Normalize(cellAt(row, cols.time)); ok {
			p.Time = &t
		}
		if note := cellAt(row, cols.notes); note != "" {
			notes = append(notes, note)
		}
		r.Participants = append(r.Participants, p)
	}

	if len(r.Participants) == 0 {
		return race.Race{}, false
	}
	r.Notes = strings.Join(notes, " ")
	return r, true
}

// findSheetColumns maps header keywords to columns. A row is a header when
// it names the club column and a time or lap column.
func findSheetColumns(row []string) (sheetColumns, bool) {
	cols := sheetColumns{club: -1, lane: -1, series: -1, time: -1, notes: -1}
	for i, cell := range row {
		h := strings.ToUpper(strings.TrimSpace(cell))
		switch {
		case h == "":
		case strings.Contains(h, "CLUB"), strings.Contains(h, "EQUIPO"):
			if cols.club < 0 {
				cols.club = i
			}
		case strings.Contains(h, "CALLE"):
			cols.lane = i
		case strings.Contains(h, "TANDA"):
			cols.series = i
		case strings.Contains(h, "CIABOGA"), strings.Contains(h, "LARGO"):
			cols.laps = append(cols.laps, i)
		case strings.Contains(h, "TIEMPO"):
			if cols.time < 0 {
				cols.time = i
			}
		case strings.HasPrefix(h, "NOTA"), strings.HasPrefix(h, "OBSERVACI"):
			cols.notes = i
		}
	}
	return cols, cols.club >= 0 && (cols.time >= 0 || len(cols.laps) > 0)
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func firstCell(row []string) string {
	for _, cell := range row {
		if cell = strings.TrimSpace(cell); cell != "" {
			return cell
		}
	}
	return ""
}

func isEmptyRow(row []string) bool {
	return firstCell(row) == ""
}
