package resource

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// ClasspathPrefix marks locations resolved against the configured classpath
// filesystem, e.g. "classpath:l10n/messages.properties".
const ClasspathPrefix = "classpath:"

// ProtocolResolver is the extension point for custom location schemes.
// Registered resolvers are consulted before any built-in strategy, in
// registration order; the first non-nil Handle wins. A resolver returns nil
// to pass the location on to the next strategy.
type ProtocolResolver interface {
	Resolve(location string, l *Locator) Handle
}

// ProtocolResolverFunc adapts a function to the ProtocolResolver interface.
type ProtocolResolverFunc func(location string, l *Locator) Handle

func (f ProtocolResolverFunc) Resolve(location string, l *Locator) Handle {
	return f(location, l)
}

// Locator maps location strings to handles. Resolution order: registered
// protocol resolvers, then absolute-path locations against the configured
// root, then the classpath: prefix, then URL detection (file URLs become
// file handles, http(s) URLs become stream handles), then a relative path
// against the root. Locating performs no I/O.
type Locator struct {
	resolvers []ProtocolResolver
	root      string
	classpath fs.FS
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithRoot sets the directory that absolute and relative path locations are
// resolved against. Empty (the default) means the process working directory.
func WithRoot(dir string) LocatorOption {
	return func(l *Locator) { l.root = dir }
}

// WithClasspath supplies the filesystem backing classpath: locations,
// typically an embed.FS.
func WithClasspath(fsys fs.FS) LocatorOption {
	return func(l *Locator) { l.classpath = fsys }
}

// NewLocator returns a locator with the built-in strategies only.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddProtocolResolver registers a custom scheme resolver. Registration order
// is preserved and determines precedence.
func (l *Locator) AddProtocolResolver(r ProtocolResolver) {
	l.resolvers = append(l.resolvers, r)
}

// ProtocolResolvers returns the registered resolvers in registration order.
func (l *Locator) ProtocolResolvers() []ProtocolResolver {
	return append([]ProtocolResolver(nil), l.resolvers...)
}

// Root returns the configured path root.
func (l *Locator) Root() string { return l.root }

// Classpath returns the configured classpath filesystem, or nil.
func (l *Locator) Classpath() fs.FS { return l.classpath }

// Locate maps location to a Handle without touching the resource. An empty
// location is a configuration error; a location that looks like a URL but
// cannot be parsed is errs.ErrMalformedLocation; a location no strategy can
// serve is errs.ErrResourceNotFound.
func (l *Locator) Locate(location string) (Handle, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location must not be empty", errs.ErrConfiguration)
	}

	for _, r := range l.resolvers {
		if h := r.Resolve(location, l); h != nil {
			return h, nil
		}
	}

	if strings.HasPrefix(location, "/") {
		return NewFileHandle(filepath.Join(l.root, filepath.FromSlash(location))), nil
	}

	if strings.HasPrefix(location, ClasspathPrefix) {
		name := cleanFSName(strings.TrimPrefix(location, ClasspathPrefix))
		if l.classpath == nil {
			return nil, fmt.Errorf("%w: no classpath filesystem configured for %q", errs.ErrResourceNotFound, location)
		}
		if !fs.ValidPath(name) {
			return nil, fmt.Errorf("%w: %q", errs.ErrMalformedLocation, location)
		}
		return NewFSHandle(l.classpath, name), nil
	}

	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errs.ErrMalformedLocation, location)
		}
		switch u.Scheme {
		case "file":
			return NewFileHandle(fileURLPath(u)), nil
		case "http", "https":
			return NewURLHandle(u), nil
		default:
			return nil, fmt.Errorf("%w: no strategy for scheme %q in %q", errs.ErrResourceNotFound, u.Scheme, location)
		}
	}

	return NewFileHandle(filepath.Join(l.root, filepath.FromSlash(location))), nil
}

func fileURLPath(u *url.URL) string {
	p := u.Path
	if u.Host != "" {
		p = "//" + u.Host + p
	}
	return filepath.FromSlash(p)
}
