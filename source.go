package i18nbundle

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jelilio/i18n-resource-bundle/errs"
	"github.com/jelilio/i18n-resource-bundle/properties"
	"github.com/jelilio/i18n-resource-bundle/resource"
)

// Source is the hierarchical message-resolution engine. It is safe for
// concurrent use; the bundle cache is its only mutable shared state. All
// work happens synchronously in the calling goroutine.
type Source struct {
	basenames []string
	locator   *resource.Locator
	fallback  *FallbackResolver
	parent    MessageSource
	cache     *bundleCache

	ttl             time.Duration
	encoding        string
	extension       string
	useSystemLocale bool
	localeAwareArgs bool

	templates  templateCache
	formatMu   sync.RWMutex
	formatters map[string]*Formatter

	id          string
	log         zerolog.Logger
	missingOnce sync.Map
}

// Option configures a Source during construction.
type Option func(*Source)

// WithBasenames sets the ordered basename list. Order defines precedence:
// an earlier basename fully shadows later ones, across all fallback locales.
// Surrounding whitespace is trimmed. At least one basename is required.
func WithBasenames(basenames ...string) Option {
	return func(s *Source) { s.basenames = basenames }
}

// WithLocator sets the resource locator used to open backing resources.
func WithLocator(l *resource.Locator) Option {
	return func(s *Source) { s.locator = l }
}

// WithParent sets the parent source consulted after every basename and
// fallback locale has been exhausted. The reference is non-owning.
func WithParent(p MessageSource) Option {
	return func(s *Source) { s.parent = p }
}

// WithDefaultLocale appends the given locale's fallback chain after the
// requested locale's own chain.
func WithDefaultLocale(loc Locale) Option {
	return func(s *Source) { s.fallback = NewFallbackResolverWithDefault(loc) }
}

// WithSystemLocaleFallback makes the host environment's locale the default
// locale when no explicit one is configured. Detection failures are ignored.
func WithSystemLocaleFallback(enabled bool) Option {
	return func(s *Source) { s.useSystemLocale = enabled }
}

// WithCacheTTL sets the freshness-check interval. Zero re-checks on every
// access; CachePermanent (the default) never re-checks.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Source) { s.ttl = d }
}

// WithPermanentCache disables freshness checks.
func WithPermanentCache() Option {
	return func(s *Source) { s.ttl = CachePermanent }
}

// WithEncoding sets the bundle source encoding by IANA name. Default UTF-8.
func WithEncoding(name string) Option {
	return func(s *Source) { s.encoding = name }
}

// WithExtension sets the resource filename extension, default ".properties".
func WithExtension(ext string) Option {
	return func(s *Source) { s.extension = ext }
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Source) { s.log = log }
}

// WithLocaleAwareArgs makes bare {N} placeholders format numeric and time
// arguments locale-sensitively. Styled placeholders always do.
func WithLocaleAwareArgs(enabled bool) Option {
	return func(s *Source) { s.localeAwareArgs = enabled }
}

// NewSource builds a Source. Configuration errors (no basenames, blank
// basenames) fail here, never during a resolve call.
func NewSource(opts ...Option) (*Source, error) {
	s := &Source{
		ttl:        CachePermanent,
		extension:  DefaultExtension,
		formatters: make(map[string]*Formatter),
		id:         uuid.NewString(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	trimmed := make([]string, 0, len(s.basenames))
	for _, bn := range s.basenames {
		bn = strings.TrimSpace(bn)
		if bn == "" {
			return nil, fmt.Errorf("%w: blank basename", errs.ErrConfiguration)
		}
		trimmed = append(trimmed, bn)
	}
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: at least one basename is required", errs.ErrConfiguration)
	}
	s.basenames = trimmed

	if s.locator == nil {
		s.locator = resource.NewLocator()
	}
	if s.fallback == nil {
		s.fallback = NewFallbackResolver()
		if s.useSystemLocale {
			if loc, err := SystemLocale(); err == nil {
				s.fallback = NewFallbackResolverWithDefault(loc)
			}
		}
	}

	s.log = s.log.With().Str("source_id", s.id).Logger()
	s.cache = newBundleCache(s.locator, properties.NewParser(s.encoding), s.ttl, s.extension, s.log)
	return s, nil
}

// Basenames returns the configured basenames in precedence order.
func (s *Source) Basenames() []string {
	return append([]string(nil), s.basenames...)
}

// Parent returns the parent source, or nil.
func (s *Source) Parent() MessageSource { return s.parent }

// Locator returns the resource locator.
func (s *Source) Locator() *resource.Locator { return s.locator }

// ID returns the instance identifier carried in this source's log entries.
func (s *Source) ID() string { return s.id }

// ClearCache drops every cached bundle; subsequent lookups reparse.
func (s *Source) ClearCache() { s.cache.clear() }

// CachedBundles returns the number of cached (basename, locale) entries,
// negative entries included.
func (s *Source) CachedBundles() int { return s.cache.size() }

// Bundle exposes the cached bundle for one basename at one exact locale,
// for verification tooling. ok is false when the backing resource is absent.
func (s *Source) Bundle(basename string, locale Locale) (*Bundle, bool, error) {
	return s.cache.get(strings.TrimSpace(basename), locale)
}

// Codes returns every code visible at locale across all basenames and
// fallback locales, deduplicated in precedence order.
func (s *Source) Codes(locale Locale) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, bn := range s.basenames {
		for _, cand := range s.fallback.Candidates(locale) {
			b, ok, err := s.cache.get(bn, cand)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			for _, code := range b.Keys() {
				if _, dup := seen[code]; !dup {
					seen[code] = struct{}{}
					out = append(out, code)
				}
			}
		}
	}
	return out, nil
}

// Resolve implements MessageSource. It fails with errs.ErrNotFound when no
// basename, fallback locale, or parent yields the code.
func (s *Source) Resolve(code string, args []any, locale Locale) (string, error) {
	msg, found, err := s.lookup(code, args, locale)
	if err != nil {
		return "", err
	}
	if found {
		return msg, nil
	}
	s.logMissing(code, locale)
	return "", fmt.Errorf("%w: %q for locale %q", errs.ErrNotFound, code, locale)
}

// ResolveDefault implements MessageSource. The default is returned verbatim
// on a clean miss; an empty default is a legal result.
func (s *Source) ResolveDefault(code string, args []any, defaultMessage string, locale Locale) (string, error) {
	msg, found, err := s.lookup(code, args, locale)
	if err != nil {
		return "", err
	}
	if found {
		return msg, nil
	}
	s.logMissing(code, locale)
	return defaultMessage, nil
}

// ResolveResolvable implements MessageSource.
func (s *Source) ResolveResolvable(res *Resolvable, locale Locale) (string, error) {
	if res == nil {
		return "", fmt.Errorf("%w: nil resolvable", errs.ErrConfiguration)
	}
	for _, code := range res.codes {
		msg, found, err := s.lookup(code, res.args, locale)
		if err != nil {
			return "", err
		}
		if found {
			return msg, nil
		}
	}
	if def, ok := res.DefaultMessage(); ok {
		return def, nil
	}
	return "", fmt.Errorf("%w: none of %v for locale %q", errs.ErrNotFound, res.codes, locale)
}

// lookup walks basenames (outer) then fallback locales (inner): basename
// order outranks locale specificity, so an exact-locale match in a later
// basename is only reached after every fallback locale of the earlier one.
// Parse and access failures abort the whole call.
func (s *Source) lookup(code string, args []any, locale Locale) (string, bool, error) {
	if code == "" {
		return "", false, nil
	}
	candidates := s.fallback.Candidates(locale)
	for _, bn := range s.basenames {
		for _, cand := range candidates {
			b, ok, err := s.cache.get(bn, cand)
			if err != nil {
				return "", false, err
			}
			if !ok {
				continue
			}
			if tmpl, defined := b.Get(code); defined {
				return s.format(tmpl, args, locale), true, nil
			}
		}
	}
	if s.parent != nil {
		msg, err := s.parent.Resolve(code, args, locale)
		if err == nil {
			return msg, true, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return "", false, err
		}
	}
	return "", false, nil
}

// format substitutes positional placeholders. The requested locale, not the
// candidate that matched, drives argument formatting.
func (s *Source) format(tmpl string, args []any, locale Locale) string {
	if len(tmpl) == 0 {
		return ""
	}
	segs := s.templates.parse(tmpl)
	f := s.formatter(locale)
	var b strings.Builder
	b.Grow(len(tmpl))
	for _, seg := range segs {
		if seg.arg < 0 {
			b.WriteString(seg.text)
			continue
		}
		if seg.arg >= len(args) {
			s.log.Debug().Str("template", tmpl).Int("arg", seg.arg).Msg("placeholder without argument")
			b.WriteString(seg.renderPlaceholder())
			continue
		}
		b.WriteString(f.formatValue(args[seg.arg], seg.style, s.localeAwareArgs))
	}
	return b.String()
}

func (s *Source) formatter(locale Locale) *Formatter {
	key := locale.String()
	s.formatMu.RLock()
	f := s.formatters[key]
	s.formatMu.RUnlock()
	if f != nil {
		return f
	}
	s.formatMu.Lock()
	defer s.formatMu.Unlock()
	if f = s.formatters[key]; f == nil {
		f = NewFormatter(locale)
		s.formatters[key] = f
	}
	return f
}
