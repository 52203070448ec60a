// Package errs defines the error taxonomy shared by the resolution engine,
// the bundle cache, and the resource layer. Callers match against the
// sentinel values with errors.Is; ErrNotFound in particular is the
// recoverable "message absent" outcome, distinct from misconfiguration.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a message code resolves to nothing after
	// exhausting all basenames, fallback locales, and the parent chain.
	ErrNotFound = errors.New("no message found for code")

	// ErrResourceNotFound is returned when a backing resource is absent.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrMalformedLocation is returned for location strings that match no
	// resolution strategy and are structurally invalid.
	ErrMalformedLocation = errors.New("malformed resource location")

	// ErrParse marks bundle parse failures; concrete failures carry a
	// *ParseError which matches this sentinel via errors.Is.
	ErrParse = errors.New("bundle parse failure")

	// ErrAccessDenied is returned when a resource exists but cannot be read.
	ErrAccessDenied = errors.New("resource access denied")

	// ErrConfiguration marks invalid setup (empty basenames, nil locations,
	// unparseable TTLs). It is always raised at construction time, never
	// deferred to a resolve call.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidLocale is returned for locale strings that cannot be
	// normalized into a subtag sequence.
	ErrInvalidLocale = errors.New("invalid locale")
)

// ParseError reports a malformed bundle resource. Line is 1-based and zero
// when the failure is not tied to a specific line (for example an unknown
// encoding name).
type ParseError struct {
	Location string
	Line     int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Location, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports true for ErrParse so callers can match the category without
// knowing the concrete type.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
