package i18nbundle

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// Locale is an immutable, ordered sequence of subtags (language, region,
// variant, ...) used as a lookup key and as input to fallback-chain
// generation. The zero value is the root locale, which names the
// locale-neutral resource. Equality is exact subtag-sequence equality.
type Locale struct {
	name string
}

// Root is the locale-neutral sentinel terminating every fallback chain.
var Root = Locale{}

// NewLocale builds a Locale from explicit subtags, e.g. NewLocale("en", "US").
// Subtags are taken as given; use ParseLocale for normalization.
func NewLocale(subtags ...string) Locale {
	parts := make([]string, 0, len(subtags))
	for _, s := range subtags {
		s = strings.TrimSpace(s)
		if s != "" {
			parts = append(parts, s)
		}
	}
	return Locale{name: strings.Join(parts, "-")}
}

// ParseLocale converts locale strings in common formats into a canonical
// Locale. POSIX-style input such as "en_US.UTF-8" or "de_DE@euro" is cleaned
// the way it appears in environment variables, "C" and "POSIX" map to
// "en-US", and "root" or the empty string yield the root locale. Well-formed
// BCP-47 tags are canonicalized; other alphanumeric subtag sequences are
// accepted as-is, so custom locales keep exact-equality semantics.
func ParseLocale(s string) (Locale, error) {
	cleaned := strings.TrimSpace(s)
	switch cleaned {
	case "C", "POSIX":
		return NewLocale("en", "US"), nil
	}
	if idx := strings.IndexByte(cleaned, '.'); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if idx := strings.IndexByte(cleaned, '@'); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	cleaned = strings.ReplaceAll(cleaned, "_", "-")
	if cleaned == "" || strings.EqualFold(cleaned, "root") {
		return Root, nil
	}
	if tag, err := language.Parse(cleaned); err == nil {
		return Locale{name: tag.String()}, nil
	}
	for _, part := range strings.Split(cleaned, "-") {
		if !isAlphanumeric(part) {
			return Root, fmt.Errorf("%w: %q", errs.ErrInvalidLocale, s)
		}
	}
	return Locale{name: cleaned}, nil
}

// MustParseLocale is ParseLocale that panics on invalid input. Intended for
// literals in configuration code.
func MustParseLocale(s string) Locale {
	loc, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsRoot reports whether l is the root locale.
func (l Locale) IsRoot() bool { return l.name == "" }

// String returns the canonical dash-separated form, or "root" for the root
// locale.
func (l Locale) String() string {
	if l.name == "" {
		return "root"
	}
	return l.name
}

// Subtags returns the ordered subtag sequence. The root locale has none.
func (l Locale) Subtags() []string {
	if l.name == "" {
		return nil
	}
	return strings.Split(l.name, "-")
}

// Parent drops the least-significant subtag: variant before region before
// language. The parent of a single-subtag locale is Root.
func (l Locale) Parent() Locale {
	idx := strings.LastIndexByte(l.name, '-')
	if idx < 0 {
		return Root
	}
	return Locale{name: l.name[:idx]}
}

// Tag returns the nearest language.Tag for locale-aware formatting. Custom
// subtag sequences that x/text cannot parse map to the undefined tag.
func (l Locale) Tag() language.Tag {
	if l.name == "" {
		return language.Und
	}
	tag, err := language.Parse(l.name)
	if err != nil {
		return language.Und
	}
	return tag
}

// resourceSuffix returns the filename suffix for this locale following the
// basename_language_REGION convention; empty for the root locale.
func (l Locale) resourceSuffix() string {
	if l.name == "" {
		return ""
	}
	return "_" + strings.ReplaceAll(l.name, "-", "_")
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
