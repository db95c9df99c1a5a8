// Package fold provides accent- and case-insensitive string keys for lookups
// over conjugated forms.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key returns s lower-cased, trimmed and stripped of combining marks, so
// "Tendrá", "tendra" and "tendrá" share a key.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Only malformed input can fail; fall back to case folding alone.
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
