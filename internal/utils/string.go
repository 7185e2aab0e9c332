package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r counts as part of a word.
// Word boundaries are transitions between word runes and anything else.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// EqualFold performs case-insensitive rune equality under Turkish casing,
// the same rune mapping lexicon normalization applies: I folds to ı, İ to i.
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}

	// ASCII fast path; 'I' has no ASCII partner under Turkish casing.
	if a < utf8.RuneSelf && b < utf8.RuneSelf && a != 'I' && b != 'I' {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}

	return unicode.TurkishCase.ToLower(a) == unicode.TurkishCase.ToLower(b)
}

// HasPrefixFold reports whether s starts with prefix under rune-wise EqualFold.
// It returns the byte length of the matched part of s.
func HasPrefixFold(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !EqualFold(sr, pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// StartsWithSpace reports whether s begins with a whitespace rune.
func StartsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}

// IsBlank reports whether s is non-empty and consists only of whitespace.
func IsBlank(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}

// RuneSuffix returns s with its first n runes removed, or "" when s is shorter.
func RuneSuffix(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}
