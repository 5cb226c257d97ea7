package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Title converts a name to display casing, e.g. "jewelled dagger" -> "Jewelled Dagger".
func Title(s string) string {
	return titleCaser.String(s)
}

// Snake converts a display name to its lookup key, e.g. "Jewelled Dagger" -> "jewelled_dagger".
// Runs of spaces, dashes and dots collapse into a single underscore.
func Snake(s string) string {
	var out strings.Builder
	prevUnderscore := false
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r + ('a' - 'A')
		}
		if r == ' ' || r == '-' || r == '.' {
			if !prevUnderscore && i > 0 {
				out.WriteRune('_')
				prevUnderscore = true
			}
			continue
		}
		if r == '_' {
			if !prevUnderscore && i > 0 {
				out.WriteRune('_')
				prevUnderscore = true
			}
			continue
		}
		out.WriteRune(r)
		prevUnderscore = false
	}
	return strings.Trim(out.String(), "_")
}

// Box frames a line of text with an equals-sign border, used for room titles.
func Box(s string) string {
	border := strings.Repeat("=", len(s)+4)
	return border + "\n| " + s + " |\n" + border
}
