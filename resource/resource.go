// Package resource turns symbolic location strings into opaque byte-source
// handles, independent of where the bytes live: the OS filesystem, an
// embedded fs.FS (the classpath equivalent), a URL, or memory. Locating a
// resource performs no I/O; existence and freshness are checked through the
// returned Handle.
package resource

import (
	"io"
	"path"
	"time"
)

// Handle is an opaque, polymorphic reference to a byte source.
type Handle interface {
	// Name returns a human-readable description of the location, suitable
	// for error messages and logs.
	Name() string

	// Exists reports whether the backing resource is currently present.
	Exists() bool

	// Open returns a reader over the resource content. It fails with
	// errs.ErrResourceNotFound when the resource is absent and with
	// errs.ErrAccessDenied when present but unreadable.
	Open() (io.ReadCloser, error)

	// ModTime returns the resource's last-modification time. The second
	// result is false when no modification metadata is available (archive
	// entries, network streams); callers must then assume the resource is
	// fresh and never auto-refresh.
	ModTime() (time.Time, bool)

	// Relative derives a sibling handle by resolving p against this
	// handle's location.
	Relative(p string) (Handle, error)
}

// relativeTo resolves rel against the directory of base using slash paths.
func relativeTo(base, rel string) string {
	return path.Join(path.Dir(base), rel)
}
