// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes text and drops combining marks, so that
// "Miércoles" and "miercoles" normalize to the same string.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s, strips diacritics and trims surrounding whitespace.
// All fuzzy matching in the agenda core goes through this single function.
//
// Example:
//
//	Normalize("  Temática del DÍA ") returns "tematica del dia"
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// transform.String only fails on malformed UTF-8; fall back to the input
		folded = s
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// FoldContains reports whether s contains substr after both are normalized.
func FoldContains(s, substr string) bool {
	return strings.Contains(Normalize(s), Normalize(substr))
}

// FoldEqual reports whether two strings are equal after normalization.
func FoldEqual(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// StripBold removes markdown-style bold markers ("**" and "__") from s.
// Imported agenda files are often pasted from chat tools that decorate
// keyword lines with bold markup.
func StripBold(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return s
}
