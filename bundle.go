package i18nbundle

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Bundle is the parsed code-to-template mapping for one (basename, locale)
// pair. It preserves source key order and is immutable once built: a cache
// refresh replaces the whole Bundle, never mutates one in place.
type Bundle struct {
	entries *orderedmap.OrderedMap[string, string]
}

func newBundle(entries *orderedmap.OrderedMap[string, string]) *Bundle {
	return &Bundle{entries: entries}
}

// Get returns the template for code. An empty template is a valid message,
// distinct from "code absent".
func (b *Bundle) Get(code string) (string, bool) {
	return b.entries.Get(code)
}

// Has reports whether code is defined in this bundle.
func (b *Bundle) Has(code string) bool {
	_, ok := b.entries.Get(code)
	return ok
}

// Keys returns all codes in source order.
func (b *Bundle) Keys() []string {
	out := make([]string, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of codes.
func (b *Bundle) Len() int { return b.entries.Len() }
