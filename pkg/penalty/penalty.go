// Package penalty classifies free-text race notes.
//
// Notes are written by scorers in Spanish, Galician or Basque and describe
// who was penalized, why, and sometimes the time a crew was credited with.
// The classifier is a fixed, ordered set of rules: lemma tuples decide which
// rule family applies to a clause and regex templates pull the subject out.
// Rule order is significant; when several rules match the first one wins.
//
// All functions are pure and safe for concurrent use.
package penalty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/rowdata/pkg/club"
	"github.com/jmylchreest/rowdata/pkg/lemma"
)

// Reason is the kind of infraction behind a penalty. The values are part of
// the serialized record format and must not change.
type Reason string

const (
	BoatWeightLimit       Reason = "BOAT_WEIGHT_LIMIT"
	Collision             Reason = "COLLISION"
	CoxwainWeightLimit    Reason = "COXWAIN_WEIGHT_LIMIT"
	Doping                Reason = "DOPING"
	LackOfCompetitiveness Reason = "LACK_OF_COMPETITIVENESS"
	NoLineStart           Reason = "NO_LINE_START"
	NullStart             Reason = "NULL_START"
	Sinking               Reason = "SINKING"
	WrongLineup           Reason = "WRONG_LINEUP"
	OffTheField           Reason = "OFF_THE_FIELD"
	StarboardTack         Reason = "STARBOARD_TACK"
	WrongRoute            Reason = "WRONG_ROUTE"

	// Unknown is used for disqualifications whose cause the note does not state.
	Unknown Reason = ""
)

// Penalty is a sanction applied to one participant of one race.
type Penalty struct {
	Reason           Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Disqualification bool   `json:"disqualification" yaml:"disqualification"`
}

// ConsistencyError reports that a note assigned two penalties, or two times,
// to the same club. It signals a defect in the rule tables or in the
// participant list and is raised with panic.
type ConsistencyError struct {
	Club string
	Note string
	What string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("penalty: %s assigned twice to %q in note %q", e.What, e.Club, e.Note)
}

var (
	disqualifiedLemma = lemma.Tuple("descalificado")
	retiredLemma      = lemma.Tuple("retiro")
)

// Normalize returns the penalties described by note, keyed by canonical club
// name. Only names in participants are penalized, except by the last-resort
// templates that apply when nothing else matched.
func Normalize(note string, participants []string) map[string]Penalty {
	penalties := make(map[string]Penalty)
	if strings.TrimSpace(note) == "" {
		return penalties
	}

	// Times come from the untouched note; rewriting would drop subjects.
	a := &assigner{note: note, participants: participants, penalties: penalties}
	if times := RetrievePenaltyTimes(note); len(times) == 1 {
		for name := range times {
			a.anchor, a.anchored = name, true
		}
	}

	for _, clause := range splitClauses(recontextualize(note, participants)) {
		lemmas := lemma.Lemmatize(clause, "es")
		if a.matchRoute(clause, lemmas) {
			continue
		}
		a.matchGeneric(clause, lemmas)
	}
	if len(penalties) > 0 {
		return penalties
	}

	whole := strings.ToUpper(note)
	if a.matchGeneric(whole, lemma.Lemmatize(whole, "es")) {
		return penalties
	}

	if a.anchored && strings.Contains(note, "fue descalificado") {
		a.set(a.anchor, Penalty{Disqualification: true})
		return penalties
	}

	for _, p := range unknownTemplates {
		if m := p.FindStringSubmatch(note); m != nil {
			a.set(club.Normalize(m[1]), Penalty{Disqualification: true})
			break
		}
	}
	return penalties
}

// assigner carries the per-note state shared by the matching stages.
type assigner struct {
	note         string
	participants []string
	penalties    map[string]Penalty

	anchor   string
	anchored bool
}

func (a *assigner) matchRoute(text string, lemmas lemma.Set) bool {
	if !slices.ContainsFunc(routeTuples, lemmas.Superset) {
		return false
	}
	for _, rule := range routeRules {
		for _, p := range rule.templates {
			m := p.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			disqualified := rule.reason == OffTheField || lemmas.Superset(disqualifiedLemma)
			if a.assign(m[1], Penalty{Reason: rule.reason, Disqualification: disqualified}) {
				return true
			}
		}
	}
	return false
}

func (a *assigner) matchGeneric(text string, lemmas lemma.Set) bool {
	for _, rule := range genericRules {
		if !slices.ContainsFunc(rule.tuples, lemmas.Superset) {
			continue
		}
		for _, p := range rule.templates {
			m := p.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			disqualified := rule.reason != Sinking && !lemmas.Superset(retiredLemma)
			if a.assign(m[1], Penalty{Reason: rule.reason, Disqualification: disqualified}) {
				return true
			}
		}
	}
	return false
}

// assign resolves the captured subject to a participant, falling back to
// the time-anchored club, and records the penalty.
func (a *assigner) assign(subject string, p Penalty) bool {
	name := club.Normalize(subject)
	if (name == "" || !slices.Contains(a.participants, name)) && a.anchored {
		name = a.anchor
	}
	if !slices.Contains(a.participants, name) {
		return false
	}
	a.set(name, p)
	return true
}

func (a *assigner) set(name string, p Penalty) {
	if _, dup := a.penalties[name]; dup {
		panic(&ConsistencyError{Club: name, Note: a.note, What: "penalty"})
	}
	a.penalties[name] = p
}
