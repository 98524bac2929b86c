package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims s, strips combining diacritical marks and upper-cases the
// result, so "Química" and "QUIMICA" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		result = s
	}
	return strings.ToUpper(result)
}
