// Package lemma reduces free-text race notes to sets of lemma tokens so that
// rules can match on meaning instead of on literal spelling.
package lemma

import (
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/spanish"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Set is an unordered collection of lemmas.
type Set map[string]struct{}

// Has reports whether the lemma is in the set.
func (s Set) Has(lemma string) bool {
	_, ok := s[lemma]
	return ok
}

// Superset reports whether every lemma of other is also in s.
func (s Set) Superset(other Set) bool {
	for l := range other {
		if !s.Has(l) {
			return false
		}
	}
	return true
}

// Sorted returns the lemmas in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// synonym folds a regional or inflected variant into the phrase the rule
// tables are written against.
type synonym struct {
	from string
	to   string
}

// Entries are disjoint; they are applied in order.
var synonyms = []synonym{
	{"entrarle agua", "entrar agua"},
	{"entró agua", "entrar agua"},
	{"entro agua", "entrar agua"},
	{"hundimiento", "hundir"},
	{"choque", "colisión"},
	{"chocar", "colisionar"},
	{"chocó", "colisionó"},
	{"abordaje", "colisión"},
	{"abordó", "colisionó"},
	{"embarcacion", "embarcación"},
	{"alineacion", "alineación"},
	{"descalificacion", "descalificación"},
	{"doping", "dopaje"},
	{"antidoping", "antidopaje"},
	// Galician
	{"foi", "fue"},
	{"desclasificado", "descalificado"},
	{"desclasificada", "descalificada"},
	{"descualificado", "descalificado"},
	{"descualificada", "descalificada"},
	{"retirouse", "se retiró"},
	{"anulouse", "se anuló"},
	{"afundimento", "hundir"},
}

var conjunctions = map[string]bool{
	"y": true, "e": true, "o": true, "u": true, "ni": true,
	"pero": true, "mas": true, "sino": true, "que": true,
	"aunque": true, "pues": true, "porque": true, "si": true,
}

var (
	synonymPatterns = compileSynonyms()
	symbols         = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
)

func compileSynonyms() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(synonyms))
	for i, s := range synonyms {
		patterns[i] = regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(s.from) + `([^\p{L}\p{N}]|$)`)
	}
	return patterns
}

// foldSynonyms rewrites every synonym variant in phrase. A match consumes
// the separators around it, so a variant repeated right after itself is only
// caught by the second pass.
func foldSynonyms(phrase string) string {
	for i, p := range synonymPatterns {
		repl := "${1}" + synonyms[i].to + "${2}"
		phrase = p.ReplaceAllString(p.ReplaceAllString(phrase, repl), repl)
	}
	return phrase
}

// Lemmatize returns the lemma set of phrase. lang selects the stemmer:
// "es" and "gl" use the Spanish Snowball stemmer, anything else only folds
// case and accents.
func Lemmatize(phrase, lang string) Set {
	out := make(Set)
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return out
	}

	words := strings.Fields(foldSynonyms(phrase))
	kept := words[:0]
	for _, w := range words {
		if !conjunctions[w] {
			kept = append(kept, w)
		}
	}

	for _, w := range strings.Fields(symbols.ReplaceAllString(strings.Join(kept, " "), " ")) {
		if l := stripAccents(stem(w, lang)); l != "" {
			out[l] = struct{}{}
		}
	}
	return out
}

// Tuple builds the lemma set of a rule written as plain words.
func Tuple(words ...string) Set {
	return Lemmatize(strings.Join(words, " "), "es")
}

// stem runs before accent stripping: the Spanish suffix tables are written
// with accents (-ió, -ación) and would miss them otherwise.
func stem(word, lang string) string {
	switch lang {
	case "es", "gl":
		return spanish.Stem(word, true)
	default:
		return word
	}
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
