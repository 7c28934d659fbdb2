package util

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SanitizeName normalizes a display name: NFKC, trimmed, internal whitespace
// runs collapsed to one space.
func SanitizeName(name string) string {
	s := norm.NFKC.String(name)
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeRestaurantName strips accents and anything that is not an ASCII
// letter, digit or space from a model-produced restaurant name.
func SanitizeRestaurantName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slug builds the URL-friendly restaurant key from name and city,
// e.g. "Girl & The Goat", "Chicago" -> "girl-and-the-goat-chicago".
func Slug(name, city string) string {
	return slug.Make(strings.TrimSpace(name + " " + city))
}
