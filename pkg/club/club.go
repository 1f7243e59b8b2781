// Package club canonicalizes club names as they appear across datasources.
//
// The same club shows up with entity titles ("C.R.", "SOCIEDAD DEPORTIVA"),
// sponsor branding, Basque/Spanish spellings and OCR noise. Normalize folds
// all of them onto a single canonical name.
package club

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	pasaiDonibane = regexp.MustCompile(`^P\.?\s?D\.?\s+`)
	spaces        = regexp.MustCompile(`\s+`)
)

// Normalize maps a raw club name to its canonical form. It is idempotent.
func Normalize(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))

	// Removing a sponsor or a title can expose a "P.D." prefix or another
	// title, so the cleanup runs until the name stops changing.
	for {
		cleaned := clean(name)
		if cleaned == name {
			break
		}
		name = cleaned
	}

	if canonical, ok := lookupAlias(name); ok {
		return canonical
	}
	return name
}

func clean(name string) string {
	name = parenthetical.ReplaceAllString(name, " ")
	name = pasaiDonibane.ReplaceAllString(collapse(name)+" ", "PASAI DONIBANE ")
	name = strings.ReplaceAll(name, ".", "")
	name = removeTitles(collapse(name))
	for _, sponsor := range sponsors {
		name = strings.ReplaceAll(name, sponsor, " ")
	}
	return collapse(name)
}

func removeTitles(name string) string {
	for _, t := range titles {
		if protected(name, t) {
			continue
		}
		for {
			stripped := t.pattern.ReplaceAllString(name, "$1 $2")
			if stripped == name {
				break
			}
			name = stripped
		}
	}
	return collapse(name)
}

func protected(name string, t title) bool {
	for _, phrase := range titleExceptions[t.text] {
		if strings.Contains(name, phrase) {
			return true
		}
	}
	return false
}

func lookupAlias(name string) (string, bool) {
	tokens := strings.Fields(name)
	for _, a := range aliases {
		for _, variant := range a.variants {
			if name == variant {
				return a.canonical, true
			}
			for _, tok := range tokens {
				if tok == variant {
					return a.canonical, true
				}
			}
		}
	}
	return "", false
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
