// Package match holds the text-level building blocks of resume matching:
// normalization, keyword extraction, cosine scoring and tier labels.
package match

import (
	"strings"
	"unicode/utf8"
)

// Normalize collapses whitespace runs to a single space, drops every
// character outside 7-bit ASCII, trims and lowercases.
//
// Whitespace is collapsed again after the ASCII filter so that a dropped
// character between two spaces cannot leave a double space behind. That
// keeps Normalize idempotent.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
