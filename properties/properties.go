// Package properties parses the line-oriented key=value bundle format: one
// message per key, one resource per (basename, locale). This is the concrete
// form of the external bundle-format collaborator the resolution engine
// calls into.
//
// Supported syntax: '#' and '!' comment lines, blank lines, '=' or ':' as
// the key/value separator, trailing-backslash line continuation, and the
// escapes \t \n \r \f \\ \uXXXX. Duplicate keys are last-write-wins. The
// source encoding is configurable by IANA name (default UTF-8).
package properties

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser parses bundle resources with a fixed source encoding.
type Parser struct {
	encoding string
}

// NewParser returns a parser for the named encoding. An empty name selects
// UTF-8. The name is validated lazily: an unknown encoding surfaces as a
// *errs.ParseError from Parse, since a misconfigured charset makes every
// resource for that basename unreadable.
func NewParser(encodingName string) *Parser {
	return &Parser{encoding: encodingName}
}

// Encoding returns the configured encoding name ("" meaning UTF-8).
func (p *Parser) Encoding() string { return p.encoding }

// Parse reads one resource and returns its code-to-template mapping in
// source order. name identifies the resource in error messages only.
func (p *Parser) Parse(name string, r io.Reader) (*orderedmap.OrderedMap[string, string], error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	text, err := p.decode(raw)
	if err != nil {
		return nil, &errs.ParseError{Location: name, Err: err}
	}

	m := orderedmap.New[string, string]()
	lines := splitLines(text)
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimLeft(lines[i], " \t")
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		for hasContinuation(line) && i+1 < len(lines) {
			i++
			line = line[:len(line)-1] + strings.TrimLeft(lines[i], " \t")
		}
		key, value, err := splitEntry(line)
		if err != nil {
			return nil, &errs.ParseError{Location: name, Line: lineNo, Err: err}
		}
		key, err = unescape(key)
		if err != nil {
			return nil, &errs.ParseError{Location: name, Line: lineNo, Err: err}
		}
		value, err = unescape(value)
		if err != nil {
			return nil, &errs.ParseError{Location: name, Line: lineNo, Err: err}
		}
		m.Set(key, value)
	}
	return m, nil
}

func (p *Parser) decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	name := strings.ToLower(strings.TrimSpace(p.encoding))
	switch name {
	case "", "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("invalid UTF-8 content")
		}
		return string(raw), nil
	}
	enc, err := ianaindex.IANA.Encoding(p.encoding)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unsupported encoding %q", p.encoding)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode as %q: %w", p.encoding, err)
	}
	return string(decoded), nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// hasContinuation reports whether the line ends with an odd number of
// backslashes, i.e. the final backslash escapes the line break.
func hasContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitEntry separates the logical line at the first unescaped '=' or ':'.
// A line without a separator maps the whole line to the empty value.
func splitEntry(line string) (key, value string, err error) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=', ':':
			key = strings.TrimRight(line[:i], " \t")
			value = strings.TrimLeft(line[i+1:], " \t")
			if key == "" {
				return "", "", fmt.Errorf("empty key")
			}
			return key, value, nil
		}
	}
	return strings.TrimRight(line, " \t"), "", nil
}

func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			if i+4 >= len(s) {
				return "", fmt.Errorf("truncated \\u escape")
			}
			code, err := strconv.ParseUint(s[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\u escape %q", s[i+1:i+5])
			}
			b.WriteRune(rune(code))
			i += 4
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}
