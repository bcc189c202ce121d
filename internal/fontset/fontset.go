// Package fontset decides which fonts may survive as editable text.
package fontset

import (
	"errors"
	"strings"
)

// ErrEmpty is returned when no usable prefix remains after normalization.
var ErrEmpty = errors.New("font set: no font prefixes given")

// Set is an immutable list of font-family name prefixes. A font is "safe"
// when its family name starts with one of the prefixes. Matching is
// case-sensitive and does no Unicode normalization; this mirrors how Keynote
// reports font names and is a documented limitation, not an oversight.
type Set struct {
	prefixes []string
}

// Parse builds a Set from a comma-separated prefix list, e.g. "Roboto,Lato".
func Parse(spec string) (Set, error) {
	return New(strings.Split(spec, ","))
}

// New builds a Set from explicit prefixes. Entries are trimmed and empty
// entries dropped; an empty result is an error.
func New(prefixes []string) (Set, error) {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return Set{}, ErrEmpty
	}
	return Set{prefixes: out}, nil
}

// Family extracts the family part of a font name as Keynote reports it.
// Keynote exposes PostScript names like "Roboto-BoldItalic"; everything from
// the first hyphen on is the style suffix.
func Family(fontName string) string {
	if i := strings.IndexByte(fontName, '-'); i >= 0 {
		return fontName[:i]
	}
	return fontName
}

// Matches reports whether the font's family starts with any prefix in the
// set.
func (s Set) Matches(fontName string) bool {
	family := Family(fontName)
	for _, p := range s.prefixes {
		if strings.HasPrefix(family, p) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the normalized prefixes.
func (s Set) Prefixes() []string {
	out := make([]string, len(s.prefixes))
	copy(out, s.prefixes)
	return out
}

func (s Set) String() string {
	return strings.Join(s.prefixes, ",")
}
