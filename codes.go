package i18nbundle

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// BuildCodes derives candidate message codes for a named object field, most
// specific first: prefix.object.field, prefix.field, prefix. Go-style
// identifiers are converted to dotted lower-case form, so
// BuildCodes("required", "LoginForm", "UserName") yields
// ["required.login.form.user.name", "required.user.name", "required"].
// Empty parts are skipped.
func BuildCodes(prefix, object, field string) []string {
	prefix = strings.TrimSpace(prefix)
	objectCode := codePart(object)
	fieldCode := codePart(field)

	var codes []string
	add := func(parts ...string) {
		code := joinCode(parts...)
		if code == "" {
			return
		}
		for _, existing := range codes {
			if existing == code {
				return
			}
		}
		codes = append(codes, code)
	}

	add(prefix, objectCode, fieldCode)
	add(prefix, fieldCode)
	add(prefix)
	return codes
}

// FieldResolvable wraps BuildCodes in a Resolvable, ready for
// ResolveResolvable.
func FieldResolvable(prefix, object, field string, args ...any) *Resolvable {
	return NewResolvable(BuildCodes(prefix, object, field)...).WithArgs(args...)
}

// codePart converts a Go identifier into its dotted code form:
// "UserName" -> "user.name".
func codePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strcase.ToDelimited(s, '.')
}

func joinCode(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
