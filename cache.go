package i18nbundle

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jelilio/i18n-resource-bundle/errs"
	"github.com/jelilio/i18n-resource-bundle/properties"
	"github.com/jelilio/i18n-resource-bundle/resource"
)

// CachePermanent disables freshness checks: bundles are parsed once and kept
// until ClearCache. Suitable for immutable, packaged resources.
const CachePermanent time.Duration = -1

// DefaultExtension is appended to basename+locale when locating resources.
const DefaultExtension = ".properties"

type cacheKey struct {
	basename string
	locale   string
}

// cacheEntry wraps an atomically published Bundle plus freshness metadata.
// A nil published bundle with loaded=true is a negative entry: the resource
// was absent at load time. The per-entry mutex serializes loads and
// refreshes so concurrent callers converge on a single parse; readers of a
// fresh entry never take it.
type cacheEntry struct {
	mu       sync.Mutex
	bundle   atomic.Pointer[Bundle]
	loaded   atomic.Bool
	loadedAt atomic.Int64

	// guarded by mu
	handle     resource.Handle
	modTime    time.Time
	hasModTime bool
}

func (e *cacheEntry) touch(now time.Time) {
	e.loadedAt.Store(now.UnixNano())
}

type bundleCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*cacheEntry

	locator   *resource.Locator
	parser    *properties.Parser
	ttl       time.Duration
	extension string
	now       func() time.Time
	log       zerolog.Logger
}

func newBundleCache(locator *resource.Locator, parser *properties.Parser, ttl time.Duration, extension string, log zerolog.Logger) *bundleCache {
	return &bundleCache{
		entries:   make(map[cacheKey]*cacheEntry),
		locator:   locator,
		parser:    parser,
		ttl:       ttl,
		extension: extension,
		now:       time.Now,
		log:       log,
	}
}

// resourceName builds the location for basename at locale, following the
// basename_language_REGION naming convention.
func (c *bundleCache) resourceName(basename string, locale Locale) string {
	return basename + locale.resourceSuffix() + c.extension
}

// stale reports whether the entry's age has exceeded the TTL. A TTL of zero
// re-checks freshness on every access; CachePermanent never does.
func (c *bundleCache) stale(e *cacheEntry) bool {
	if c.ttl < 0 {
		return false
	}
	age := c.now().UnixNano() - e.loadedAt.Load()
	return age >= int64(c.ttl)
}

// get returns the bundle for (basename, locale), parsing or refreshing it if
// needed. ok is false when the backing resource does not exist (a negative
// entry). Parse and access failures propagate without disturbing a prior
// valid bundle.
func (c *bundleCache) get(basename string, locale Locale) (b *Bundle, ok bool, err error) {
	key := cacheKey{basename: basename, locale: locale.String()}

	c.mu.RLock()
	e := c.entries[key]
	c.mu.RUnlock()
	if e == nil {
		c.mu.Lock()
		if e = c.entries[key]; e == nil {
			e = &cacheEntry{}
			c.entries[key] = e
		}
		c.mu.Unlock()
	}

	if e.loaded.Load() && !c.stale(e) {
		b := e.bundle.Load()
		return b, b != nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Another caller may have loaded or refreshed while we waited.
	if e.loaded.Load() && !c.stale(e) {
		b := e.bundle.Load()
		return b, b != nil, nil
	}

	if !e.loaded.Load() || e.bundle.Load() == nil {
		return c.load(key, e)
	}
	return c.refresh(key, e)
}

// load resolves and parses the resource from scratch. Caller holds e.mu.
func (c *bundleCache) load(key cacheKey, e *cacheEntry) (*Bundle, bool, error) {
	location := c.resourceName(key.basename, localeFromKey(key))
	h, err := c.locator.Locate(location)
	if err != nil {
		if errors.Is(err, errs.ErrResourceNotFound) {
			c.storeNegative(e, nil)
			return nil, false, nil
		}
		return nil, false, err
	}
	if !h.Exists() {
		c.storeNegative(e, h)
		return nil, false, nil
	}

	b, mod, hasMod, err := c.parse(h)
	if err != nil {
		if errors.Is(err, errs.ErrResourceNotFound) {
			c.storeNegative(e, h)
			return nil, false, nil
		}
		return nil, false, err
	}

	e.handle = h
	e.modTime = mod
	e.hasModTime = hasMod
	e.bundle.Store(b)
	e.touch(c.now())
	e.loaded.Store(true)
	c.log.Debug().Str("resource", h.Name()).Int("codes", b.Len()).Msg("bundle loaded")
	return b, true, nil
}

// refresh re-checks an existing positive entry against its freshness token.
// Caller holds e.mu.
func (c *bundleCache) refresh(key cacheKey, e *cacheEntry) (*Bundle, bool, error) {
	cur := e.bundle.Load()

	// No modification metadata means the source cannot signal change:
	// assume fresh and only reset the check cadence.
	if !e.hasModTime {
		e.touch(c.now())
		return cur, true, nil
	}

	mod, hasMod := e.handle.ModTime()
	if hasMod && mod.Equal(e.modTime) {
		e.touch(c.now())
		return cur, true, nil
	}

	b, mod, hasMod, err := c.parse(e.handle)
	if err != nil {
		// The entry keeps serving the last valid bundle; the caller that
		// observed the failure gets the error, and the reset age keeps
		// retries on the TTL cadence.
		e.touch(c.now())
		if errors.Is(err, errs.ErrResourceNotFound) {
			c.storeNegative(e, e.handle)
			return nil, false, nil
		}
		c.log.Warn().Err(err).Str("resource", e.handle.Name()).Msg("bundle refresh failed, keeping cached bundle")
		return nil, false, err
	}

	e.modTime = mod
	e.hasModTime = hasMod
	e.bundle.Store(b)
	e.touch(c.now())
	c.log.Debug().Str("resource", e.handle.Name()).Int("codes", b.Len()).Msg("bundle refreshed")
	return b, true, nil
}

// parse stats the freshness token before reading, so a write racing the read
// is caught by the next check.
func (c *bundleCache) parse(h resource.Handle) (*Bundle, time.Time, bool, error) {
	mod, hasMod := h.ModTime()
	r, err := h.Open()
	if err != nil {
		return nil, time.Time{}, false, err
	}
	defer r.Close()
	entries, err := c.parser.Parse(h.Name(), r)
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return newBundle(entries), mod, hasMod, nil
}

func (c *bundleCache) storeNegative(e *cacheEntry, h resource.Handle) {
	e.handle = h
	e.hasModTime = false
	e.bundle.Store(nil)
	e.touch(c.now())
	e.loaded.Store(true)
}

// clear drops every cached entry; the next lookup reparses.
func (c *bundleCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*cacheEntry)
}

// size returns the number of cached (basename, locale) entries, negative
// entries included.
func (c *bundleCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func localeFromKey(key cacheKey) Locale {
	if key.locale == "root" {
		return Root
	}
	return Locale{name: key.locale}
}
