package derive

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptySlug is returned when a file name has no URL-safe characters.
var ErrEmptySlug = errors.New("file name yields an empty slug")

// SlugFromPath derives a slug from a source file path: the base name with its
// extension stripped, normalized by Slugify.
func SlugFromPath(path string) (string, error) {
	base := filepath.Base(path)
	return Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Slugify lowercases name, folds accented letters to ASCII, and replaces each
// run of characters outside [a-z0-9] with a single dash. Leading and trailing
// dashes are trimmed.
func Slugify(name string) (string, error) {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "", ErrEmptySlug
	}
	return b.String(), nil
}
