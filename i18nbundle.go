// Package i18nbundle resolves locale-specific text messages by symbolic
// code, with positional parameter substitution and a fallback chain when a
// locale- or code-specific translation is missing.
//
// A Source walks locale fallback (language+region, language, configured
// default, root), an ordered list of basenames, and an optional parent
// source; the first matching template wins and is formatted with the call's
// arguments. Parsed bundles are cached per (basename, locale) with either a
// permanent or TTL-checked freshness policy.
//
//	src, err := i18nbundle.NewSource(
//		i18nbundle.WithBasenames("messages"),
//		i18nbundle.WithLocator(resource.NewLocator(resource.WithRoot("l10n"))),
//	)
//	msg, err := src.Resolve("welcome.text", []any{"Ada"}, i18nbundle.MustParseLocale("en-GB"))
package i18nbundle

// MessageSource resolves messages hierarchically. Any implementation can
// serve as the parent of a Source; parent references are non-owning and a
// single parent may back multiple children. Delegation must be acyclic by
// contract.
type MessageSource interface {
	// Resolve returns the formatted message for code, or an error matching
	// errs.ErrNotFound when nothing resolves. This is the contract with no
	// escape hatch.
	Resolve(code string, args []any, locale Locale) (string, error)

	// ResolveDefault returns the formatted message for code, or
	// defaultMessage verbatim when nothing resolves. Hard failures (parse,
	// access) still surface as errors.
	ResolveDefault(code string, args []any, defaultMessage string, locale Locale) (string, error)

	// ResolveResolvable tries each of the resolvable's codes in order, then
	// its embedded default, and fails with errs.ErrNotFound when both are
	// exhausted.
	ResolveResolvable(res *Resolvable, locale Locale) (string, error)
}

// Resolvable carries an ordered list of candidate codes, an argument list,
// and an optional default message: "try these codes in order, else this
// default".
type Resolvable struct {
	codes          []string
	args           []any
	defaultMessage string
	hasDefault     bool
}

// NewResolvable returns a resolvable over the given candidate codes, most
// specific first.
func NewResolvable(codes ...string) *Resolvable {
	return &Resolvable{codes: append([]string(nil), codes...)}
}

// WithArgs sets the arguments applied to whichever code resolves.
func (r *Resolvable) WithArgs(args ...any) *Resolvable {
	r.args = args
	return r
}

// WithDefault sets the embedded default message. An empty default is legal
// and distinct from no default.
func (r *Resolvable) WithDefault(msg string) *Resolvable {
	r.defaultMessage = msg
	r.hasDefault = true
	return r
}

// Codes returns the candidate codes in lookup order.
func (r *Resolvable) Codes() []string {
	return append([]string(nil), r.codes...)
}

// Args returns the argument list.
func (r *Resolvable) Args() []any { return r.args }

// DefaultMessage returns the embedded default and whether one was set.
func (r *Resolvable) DefaultMessage() (string, bool) {
	return r.defaultMessage, r.hasDefault
}
