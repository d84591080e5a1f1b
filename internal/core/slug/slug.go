// Package slug derives URL-safe identifiers from display names.
//
// Slugs are deterministic: the same input always yields the same slug.
// Uniqueness across sibling resources comes from the optional ID suffix,
// not from the normalized text itself.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"

	"backroom/internal/core/apperror"
)

// Options controls slug generation.
type Options struct {
	// WithID appends a short suffix derived from UUID to guarantee uniqueness.
	WithID bool

	// UUID is the resource identifier the suffix is taken from.
	// Required when WithID is set.
	UUID string
}

// stripMarks removes combining marks left over after NFD decomposition,
// so "Café Ümlaut" folds to "Cafe Umlaut".
var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Generate converts free-form text into a URL-safe slug.
//
// Pipeline: NFD decompose, drop combining marks, lowercase, collapse
// whitespace runs into single hyphens, drop everything outside
// [a-z0-9_-], collapse repeated hyphens, trim leading/trailing hyphens.
//
// With Options.WithID the tail segment of the UUID (after its last
// hyphen, or the whole UUID when it has none) is appended after a hyphen.
func Generate(text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperror.NewValidation("slug source text must not be empty")
	}
	if opts.WithID && opts.UUID == "" {
		return "", apperror.NewValidation("uuid is required when id suffix is requested")
	}

	decomposed := norm.NFD.String(text)
	folded := stripMarks.String(decomposed)
	lowered := strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(lowered))
	prevHyphen := false
	for _, r := range lowered {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			prevHyphen = false
		default:
			// dropped: punctuation, symbols, anything non-ASCII left after folding
		}
	}

	result := strings.Trim(b.String(), "-")
	if result == "" {
		return "", apperror.NewValidation("slug source text contains no usable characters")
	}

	if opts.WithID {
		result = result + "-" + idSuffix(opts.UUID)
	}
	return result, nil
}

// idSuffix returns the segment of the UUID after its last hyphen.
// A UUID without hyphens is used whole.
func idSuffix(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 {
		return id[i+1:]
	}
	return id
}
