package penalty

import (
	"regexp"
	"slices"

	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/lemma"
)

var cancelledTuples = tuples(
	[]string{"anular", "regata"},
	[]string{"anular", "prueba"},
	[]string{"cancelar", "regata"},
	[]string{"cancelar", "prueba"},
	[]string{"suspender", "regata"},
	[]string{"suspender", "prueba"},
	[]string{"aplazar", "regata"},
	[]string{"tanda", "no", "salir"},
	[]string{"regata", "no", "celebrar"},
)

var retiredTemplates = templates(
	`(?i)^(?:(.*?) )?(?:se retir[óo]|abandon[óo]|no termin[óo]|no finaliz[óo]|no lleg[óo] a meta)`,
	`(?i)^(?:(.*?) )?(?:fue|qued[óo]|est[áa]) retirad[oa]`,
	`(?i)^retirad[oa] (?:el equipo de |la trainera de )?(.*)`,
)

var guestTemplates = templates(
	`(?i)^(?:(.*?) )?(?:particip[óo]|compiti[óo]|rem[óo]|reg[óo]|bog[óo]|sali[óo]) como invitad[oa]`,
	`(?i)^(?:(.*?) )?(?:era|es|fue|iba) (?:como )?invitad[oa]`,
	`(?i)^(?:(.*?) )?(?:particip[óo] |rem[óo] |compiti[óo] )?fuera de concurso`,
	`(?i)^(?:(.*?) )?(?:no punt[úu]a|no puntuaba|no puntu[óo])`,
)

var absentTemplates = templates(
	`(?i)^(?:(.*?) )?no (?:se present[óo]|acudi[óo]|compareci[óo]|tom[óo] parte|particip[óo])`,
	`(?i)^(?:(.*?) )?(?:estuvo |fue |qued[óo] )?ausente`,
	`(?i)^(?:(.*?) )?no (?:sali[óo]|tom[óo] la salida)$`,
)

// IsCancelled reports whether note says the race did not take place or was
// voided.
func IsCancelled(note string) bool {
	return slices.ContainsFunc(cancelledTuples, lemma.Lemmatize(note, "es").Superset)
}

// IsRetired reports whether note says participant retired from the race.
func IsRetired(note, participant string) bool {
	return mentions(retiredTemplates, note, participant)
}

// IsGuest reports whether note says participant raced as a guest, outside
// the standings.
func IsGuest(note, participant string) bool {
	return mentions(guestTemplates, note, participant)
}

// IsAbsent reports whether note says participant did not show up.
func IsAbsent(note, participant string) bool {
	return mentions(absentTemplates, note, participant)
}

// mentions tries the templates against the whole note first and then
// against each clause, succeeding when a captured subject is participant.
func mentions(patterns []*regexp.Regexp, note, participant string) bool {
	want := club.Normalize(participant)
	if want == "" {
		return false
	}
	if subjectIs(patterns, note, want) {
		return true
	}
	for _, clause := range splitClauses(note) {
		if subjectIs(patterns, clause, want) {
			return true
		}
	}
	return false
}

func subjectIs(patterns []*regexp.Regexp, text, want string) bool {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return club.Normalize(m[1]) == want
		}
	}
	return false
}
