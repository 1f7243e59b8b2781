package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmylchreest/rowdata/pkg/race"
)

var csvHeader = []string{
	"datasource", "url", "race", "date", "day", "gender", "category", "cancelled",
	"club", "raw_name", "series", "lane", "laps", "time",
	"penalty", "disqualified", "retired", "guest", "absent",
}

// CSVWriter writes one row per participant. It only accepts races.
type CSVWriter struct {
	w      *csv.Writer
	header bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write adds the rows of a race.Race, *race.Race or []race.Race.
func (w *CSVWriter) Write(v any) error {
	switch r := v.(type) {
	case race.Race:
		return w.writeRace(&r)
	case *race.Race:
		return w.writeRace(r)
	case []race.Race:
		for i := range r {
			if err := w.writeRace(&r[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("csv: %w: %T", ErrUnsupportedValue, v)
	}
}

func (w *CSVWriter) writeHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	return w.w.Write(csvHeader)
}

func (w *CSVWriter) writeRace(r *race.Race) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format("2006-01-02")
	}
	for _, p := range r.Participants {
		laps := make([]string, len(p.Laps))
		for i, l := range p.Laps {
			laps[i] = l.String()
		}
		var finish, reason, disqualified string
		if p.Time != nil {
			finish = p.Time.String()
		}
		if p.Penalty != nil {
			reason = string(p.Penalty.Reason)
			disqualified = strconv.FormatBool(p.Penalty.Disqualification)
		}

		row := []string{
			r.Datasource, r.URL, r.Name, date, itoa(r.Day), string(r.Gender), r.Category,
			strconv.FormatBool(r.Cancelled),
			p.Club, p.RawName, itoa(p.Series), itoa(p.Lane), strings.Join(laps, "|"), finish,
			reason, disqualified,
			strconv.FormatBool(p.Retired), strconv.FormatBool(p.Guest), strconv.FormatBool(p.Absent),
		}
		if err := w.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Close writes the header if nothing else was written and flushes.
func (w *CSVWriter) Close() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
