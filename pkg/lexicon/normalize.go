package lexicon

import (
	"strings"
	"unicode"
)

// Normalize returns the comparison form of text: lowercase, with the Turkic
// dotted/dotless I rule (İ -> i, I -> ı) taking precedence over the default
// Unicode mapping. Every other rune lowercases as usual.
//
// Headwords and queries must both pass through Normalize before they are
// compared. Normalize never changes the rune count of its input.
func Normalize(text string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, text)
}
