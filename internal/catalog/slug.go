package catalog

import "strings"

var turkishASCII = strings.NewReplacer(
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
	"ş", "s", "Ş", "s",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
)

// Slugify turns a product name into a URL-safe slug. Turkish letters are
// transliterated to ASCII, whitespace collapses to single dashes and any other
// non-alphanumeric rune is dropped.
func Slugify(text string) string {
	s := turkishASCII.Replace(strings.TrimSpace(text))
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '\t' || r == '\n' || r == '-':
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
