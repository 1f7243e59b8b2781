package penalty

import (
	"github.com/jmylchreest/rowdata/pkg/laptime"
)

// Classification gathers everything a note says about a race.
type Classification struct {
	Note      string                  `json:"note" yaml:"note"`
	Cancelled bool                    `json:"cancelled" yaml:"cancelled"`
	Penalties map[string]Penalty      `json:"penalties,omitempty" yaml:"penalties,omitempty"`
	Times     map[string]laptime.Time `json:"times,omitempty" yaml:"times,omitempty"`
	Retired   []string                `json:"retired,omitempty" yaml:"retired,omitempty"`
	Guests    []string                `json:"guests,omitempty" yaml:"guests,omitempty"`
	Absent    []string                `json:"absent,omitempty" yaml:"absent,omitempty"`
}

// Classify runs every classifier over note. Flag lists keep the order of
// participants.
func Classify(note string, participants []string) Classification {
	c := Classification{
		Note:      note,
		Cancelled: IsCancelled(note),
		Penalties: Normalize(note, participants),
		Times:     RetrievePenaltyTimes(note),
	}
	for _, p := range participants {
		if IsRetired(note, p) {
			c.Retired = append(c.Retired, p)
		}
		if IsGuest(note, p) {
			c.Guests = append(c.Guests, p)
		}
		if IsAbsent(note, p) {
			c.Absent = append(c.Absent, p)
		}
	}
	return c
}
