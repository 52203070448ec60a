package i18nbundle

// FallbackResolver produces the ordered candidate-locale sequence for a
// requested locale. The sequence starts with the exact locale, successively
// drops the least-significant subtag, optionally continues with the
// configured default locale's own chain, and always terminates with Root.
// Earlier entries shadow later ones. The output depends only on the input
// locale and static configuration: no I/O, no caching.
type FallbackResolver struct {
	defaultLocale Locale
	useDefault    bool
}

// NewFallbackResolver returns a resolver without a configured default locale.
func NewFallbackResolver() *FallbackResolver {
	return &FallbackResolver{}
}

// NewFallbackResolverWithDefault returns a resolver that appends the chain of
// def after the requested locale's own chain. A root default is equivalent to
// no default.
func NewFallbackResolverWithDefault(def Locale) *FallbackResolver {
	return &FallbackResolver{defaultLocale: def, useDefault: !def.IsRoot()}
}

// DefaultLocale returns the configured default locale and whether one is set.
func (r *FallbackResolver) DefaultLocale() (Locale, bool) {
	return r.defaultLocale, r.useDefault
}

// Candidates returns the finite lookup order for locale, deduplicated with
// first occurrence winning.
func (r *FallbackResolver) Candidates(locale Locale) []Locale {
	out := make([]Locale, 0, 6)
	seen := make(map[string]struct{}, 6)

	appendChain := func(l Locale) {
		for !l.IsRoot() {
			if _, dup := seen[l.name]; !dup {
				seen[l.name] = struct{}{}
				out = append(out, l)
			}
			l = l.Parent()
		}
	}

	appendChain(locale)
	if r.useDefault {
		appendChain(r.defaultLocale)
	}
	return append(out, Root)
}
