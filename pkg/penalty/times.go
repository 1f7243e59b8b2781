package penalty

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/laptime"
)

const timeToken = `([:\d][\d:.,']*\d)`

// respectively matches "A and B ..., their times were X and Y, respectively".
var respectively = templates(
	`(?i)^(.+?) (?:formaban parte de|pertenec[íi]an a|participaron en|compitieron en|eran) .*?,? sus tiempos (?:fueron|son|eran) (?:de )?(.+?),? respectivamente`,
	`(?i)^los tiempos de (.+?) (?:fueron|son|eran) (?:de )?(.+?),? respectivamente`,
)

var listSeparator = regexp.MustCompile(`\s*,\s*|\s+y\s+|\s+e\s+`)

// timeTemplates are tried per clause, most specific first.
var timeTemplates = templates(
	`(?i)^el tiempo (?:real |oficial |final )?de (.*?) (?:fue|es|era|ha sido) (?:de )?`+timeToken,
	`(?i)^(.*?) (?:hizo|marc[óo]|registr[óo]|realiz[óo]|obtuvo|tuvo) (?:un|el) tiempo de `+timeToken,
	`(?i)^(.*?) (?:entr[óo] en meta|lleg[óo] a meta|lleg[óo]) (?:con|en) (?:un tiempo de )?`+timeToken,
	`(?i)^(.*?) (?:hizo|marc[óo]|registr[óo]) `+timeToken,
	`(?i)^(.*) de `+timeToken,
)

// RetrievePenaltyTimes extracts the times a note credits to clubs. Keys are
// canonical club names; a key may be empty when a clause states a time
// without naming who it belongs to.
func RetrievePenaltyTimes(note string) map[string]laptime.Time {
	times := make(map[string]laptime.Time)
	if strings.TrimSpace(note) == "" {
		return times
	}

	text := strings.TrimSpace(note)
	for _, p := range respectively {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		names := listSeparator.Split(m[1], -1)
		values := listSeparator.Split(m[2], -1)
		for i := 0; i < len(names) && i < len(values); i++ {
			if t, ok := laptime.Normalize(values[i]); ok {
				setTime(times, note, club.Normalize(names[i]), t)
			}
		}
		return times
	}

	for _, clause := range splitClauses(note) {
		for _, p := range timeTemplates {
			m := p.FindStringSubmatch(clause)
			if m == nil {
				continue
			}
			if t, ok := laptime.Normalize(m[2]); ok {
				setTime(times, note, club.Normalize(m[1]), t)
			}
			break
		}
	}
	return times
}

func setTime(times map[string]laptime.Time, note, name string, t laptime.Time) {
	if _, dup := times[name]; dup {
		panic(&ConsistencyError{Club: name, Note: note, What: "time"})
	}
	times[name] = t
}
