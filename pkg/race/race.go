// Package race holds the records produced by datasources and the glue that
// folds a race note into them.
package race

import (
	"slices"
	"time"

	"github.com/jmylchreest/rowdata/internal/logger"
	"github.com/jmylchreest/rowdata/pkg/laptime"
	"github.com/jmylchreest/rowdata/pkg/penalty"
)

// Gender of the crews competing in a race.
type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
	Mix    Gender = "MIX"
)

// Race is one race as published by a datasource.
type Race struct {
	Datasource   string        `json:"datasource" yaml:"datasource"`
	URL          string        `json:"url,omitempty" yaml:"url,omitempty"`
	Name         string        `json:"name" yaml:"name"`
	Date         time.Time     `json:"date,omitzero" yaml:"date,omitempty"`
	Day          int           `json:"day,omitempty" yaml:"day,omitempty"`
	Gender       Gender        `json:"gender,omitempty" yaml:"gender,omitempty"`
	Category     string        `json:"category,omitempty" yaml:"category,omitempty"`
	Cancelled    bool          `json:"cancelled" yaml:"cancelled"`
	Notes        string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Participants []Participant `json:"participants" yaml:"participants"`
}

// Participant is one crew in a race.
type Participant struct {
	Club    string           `json:"club" yaml:"club"`
	RawName string           `json:"raw_name" yaml:"raw_name"`
	Lane    int              `json:"lane,omitempty" yaml:"lane,omitempty"`
	Series  int              `json:"series,omitempty" yaml:"series,omitempty"`
	Laps    []laptime.Time   `json:"laps,omitempty" yaml:"laps,omitempty"`
	Time    *laptime.Time    `json:"time,omitempty" yaml:"time,omitempty"`
	Penalty *penalty.Penalty `json:"penalty,omitempty" yaml:"penalty,omitempty"`
	Retired bool             `json:"retired,omitempty" yaml:"retired,omitempty"`
	Guest   bool             `json:"guest,omitempty" yaml:"guest,omitempty"`
	Absent  bool             `json:"absent,omitempty" yaml:"absent,omitempty"`
}

// ClubNames returns the canonical club names of the participants, in lane
// order, without duplicates.
func (r *Race) ClubNames() []string {
	names := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		if p.Club != "" && !slices.Contains(names, p.Club) {
			names = append(names, p.Club)
		}
	}
	return names
}

// ApplyNote classifies the race notes and records the outcome on the race
// and its participants. A time from the note only fills a missing time; the
// results table wins when both exist.
func (r *Race) ApplyNote() {
	if r.Notes == "" {
		return
	}

	c := penalty.Classify(r.Notes, r.ClubNames())
	r.Cancelled = r.Cancelled || c.Cancelled

	for name := range c.Penalties {
		if r.participant(name) == nil {
			logger.Debug("penalty for unknown club ignored", "race", r.Name, "club", name)
		}
	}
	for name := range c.Times {
		if r.participant(name) == nil {
			logger.Debug("note time for unknown club ignored", "race", r.Name, "club", name)
		}
	}

	for i := range r.Participants {
		p := &r.Participants[i]
		if pen, ok := c.Penalties[p.Club]; ok {
			p.Penalty = &pen
		}
		if t, ok := c.Times[p.Club]; ok && p.Time == nil {
			p.Time = &t
		}
		p.Retired = p.Retired || slices.Contains(c.Retired, p.Club)
		p.Guest = p.Guest || slices.Contains(c.Guests, p.Club)
		p.Absent = p.Absent || slices.Contains(c.Absent, p.Club)
	}
}

func (r *Race) participant(name string) *Participant {
	for i := range r.Participants {
		if r.Participants[i].Club == name {
			return &r.Participants[i]
		}
	}
	return nil
}
