// Package accountkey canonicalizes account labels for matching.
//
// Labels have the form Prefix(Bank). Staff type them with inconsistent
// spacing and casing, so matching is exact only after normalization.
package accountkey

import (
	"strings"
	"unicode"
)

// Normalize lower-cases the label and removes all whitespace.
func Normalize(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, label)
}

// Match reports whether two labels refer to the same account.
// No fuzzy matching: equality after normalization only.
func Match(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Join builds a display label from a prefix and a bank name.
func Join(prefix, bank string) string {
	return strings.TrimSpace(prefix) + "(" + strings.TrimSpace(bank) + ")"
}
