package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases the name and collapses whitespace runs into single
// hyphens. Accented letters pass through unchanged.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(lower), "-")
}

// SlugifyStrict builds a URL-safe slug: diacritics are folded to their base
// letters ("Anéis" becomes "aneis"), whitespace runs become hyphens, and any
// remaining character outside [a-z0-9-] is dropped.
func SlugifyStrict(name string) string {
	slug := Slugify(name)

	if folded, _, err := transform.String(deaccent, slug); err == nil {
		slug = folded
	}

	var b strings.Builder
	b.Grow(len(slug))
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
