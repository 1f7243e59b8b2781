package penalty

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// splitClauses breaks a note into its comma-separated clauses. Both the
// uppercased and the raw form of the note go through here, so the
// replacements cover both cases.
func splitClauses(text string) []string {
	text = strings.ReplaceAll(text, " Y ", ", ")
	text = strings.ReplaceAll(text, " y ", ", ")
	text = strings.ReplaceAll(text, ". ", ", ")
	// OCR regularly drops the F of "fue".
	text = strings.ReplaceAll(text, " UE ", " FUE ")
	text = strings.ReplaceAll(text, " ue ", " fue ")
	text = strings.TrimSuffix(strings.TrimSpace(text), ".")

	var clauses []string
	for _, c := range strings.Split(text, ", ") {
		if c = strings.TrimSpace(c); c != "" {
			clauses = append(clauses, c)
		}
	}
	return clauses
}

// recontextualize uppercases note and, in sentences with a single "Y",
// removes participant names from the part after it. Such sentences read
// "A did X Y was disqualified for it", and the trailing clause must not
// pick up a second subject.
func recontextualize(note string, participants []string) string {
	upper := strings.ToUpper(note)
	names := participantPatterns(participants)

	sentences := strings.Split(upper, ". ")
	for i, sentence := range sentences {
		if countWord(sentence, "Y") != 1 {
			continue
		}
		idx := strings.Index(sentence, " Y ")
		if idx < 0 {
			continue
		}
		head, tail := sentence[:idx], sentence[idx+len(" Y "):]
		for _, p := range names {
			tail = p.ReplaceAllString(tail, "$1$2")
		}
		sentences[i] = head + " Y " + strings.Join(strings.Fields(tail), " ")
	}
	return strings.Join(sentences, ". ")
}

// participantPatterns compiles one whole-word pattern per participant,
// longest names first so "ORIO B" is removed before "ORIO".
func participantPatterns(participants []string) []*regexp.Regexp {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			names = append(names, p)
		}
	}
	slices.SortStableFunc(names, func(a, b string) int { return cmp.Compare(len(b), len(a)) })

	patterns := make([]*regexp.Regexp, len(names))
	for i, n := range names {
		patterns[i] = regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(n) + `([^\p{L}\p{N}]|$)`)
	}
	return patterns
}

func countWord(s, word string) int {
	n := 0
	for _, f := range strings.Fields(s) {
		if f == word {
			n++
		}
	}
	return n
}
