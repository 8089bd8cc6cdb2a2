// Package search holds the text handling behind the product search box:
// accent folding, query expansion and post-fetch relevance ordering.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, strips diacritics and trims surrounding whitespace
// so "Calça" and "calca" compare equal. It is idempotent.
func Normalize(s string) string {
	// transform.Chain keeps state, so each call gets its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.TrimSpace(folded)
}
