package i18nbundle

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter provides locale-aware rendering for numbers, dates, and times.
type Formatter struct {
	printer *message.Printer
	tag     language.Tag
}

// NewFormatter returns a formatter for the given locale.
func NewFormatter(locale Locale) *Formatter {
	tag := locale.Tag()
	return &Formatter{printer: message.NewPrinter(tag), tag: tag}
}

// FormatInt formats an integer according to locale rules.
func (f *Formatter) FormatInt(n int64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// FormatFloat formats a floating-point value according to locale rules.
func (f *Formatter) FormatFloat(n float64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// FormatPercent formats a ratio as a locale-correct percentage.
func (f *Formatter) FormatPercent(n float64) string {
	return f.printer.Sprint(number.Percent(n))
}

// FormatOrdinal formats an ordinal number (1st, 2nd, ...) for the locale's
// base language, falling back to the plain number.
func (f *Formatter) FormatOrdinal(n int64) string {
	base, _ := f.tag.Base()
	switch base.String() {
	case "en":
		return englishOrdinal(n)
	case "fr":
		if n == 1 {
			return "1er"
		}
		return fmt.Sprintf("%de", n)
	case "es":
		return fmt.Sprintf("%d°", n)
	default:
		return f.FormatInt(n)
	}
}

// FormatDate renders the date portion using the locale's conventional layout.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(f.dateLayout())
}

// FormatTime renders the time-of-day portion.
func (f *Formatter) FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDateTime renders date and time.
func (f *Formatter) FormatDateTime(t time.Time) string {
	return t.Format(f.dateLayout() + " 15:04")
}

func englishOrdinal(n int64) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func (f *Formatter) dateLayout() string {
	switch f.tag.String() {
	case "en-US":
		return "01/02/2006"
	case "en-GB", "fr-FR":
		return "02/01/2006"
	case "de", "de-DE", "de-CH", "de-AT":
		return "02.01.2006"
	default:
		return "2006-01-02"
	}
}

// formatValue renders one argument. style is the optional placeholder
// qualifier ("number", "percent", "ordinal", "date", "time", "datetime");
// empty style uses the argument's natural string form unless localeAware is
// set, in which case numeric and time values format locale-sensitively.
func (f *Formatter) formatValue(v any, style string, localeAware bool) string {
	switch style {
	case "number":
		if n, ok := toFloat(v); ok {
			if i, isInt := toInt(v); isInt {
				return f.FormatInt(i)
			}
			return f.FormatFloat(n)
		}
	case "percent":
		if n, ok := toFloat(v); ok {
			return f.FormatPercent(n)
		}
	case "ordinal":
		if i, ok := toInt(v); ok {
			return f.FormatOrdinal(i)
		}
	case "date":
		if t, ok := toTime(v); ok {
			return f.FormatDate(t)
		}
	case "time":
		if t, ok := toTime(v); ok {
			return f.FormatTime(t)
		}
	case "datetime":
		if t, ok := toTime(v); ok {
			return f.FormatDateTime(t)
		}
	case "":
		if localeAware {
			if i, ok := toInt(v); ok {
				return f.FormatInt(i)
			}
			if n, ok := toFloat(v); ok {
				return f.FormatFloat(n)
			}
			if t, isTime := v.(time.Time); isTime {
				return f.FormatDateTime(t)
			}
		}
	}
	return fmt.Sprint(v)
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// toTime accepts time.Time directly and parses string timestamps leniently.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := dateparse.ParseAny(t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

// segment is one parsed piece of a message template: either literal text or
// a positional placeholder with an optional style qualifier.
type segment struct {
	text  string
	arg   int // -1 for literal segments
	style string
}

// parseTemplate splits a template at {N} and {N,style} placeholders. Braces
// that do not form a placeholder are literal.
func parseTemplate(tmpl string) []segment {
	var segs []segment
	lit := strings.Builder{}
	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			lit.WriteString(tmpl[i:])
			break
		}
		open += i
		lit.WriteString(tmpl[i:open])
		arg, style, end, ok := parsePlaceholder(tmpl, open)
		if !ok {
			lit.WriteByte('{')
			i = open + 1
			continue
		}
		if lit.Len() > 0 {
			segs = append(segs, segment{text: lit.String(), arg: -1})
			lit.Reset()
		}
		segs = append(segs, segment{arg: arg, style: style})
		i = end
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{text: lit.String(), arg: -1})
	}
	return segs
}

// parsePlaceholder reads "{N}" or "{N,style}" starting at the brace; end is
// the index just past the closing brace.
func parsePlaceholder(tmpl string, open int) (arg int, style string, end int, ok bool) {
	i := open + 1
	start := i
	for i < len(tmpl) && tmpl[i] >= '0' && tmpl[i] <= '9' {
		i++
	}
	if i == start {
		return 0, "", 0, false
	}
	n, err := strconv.Atoi(tmpl[start:i])
	if err != nil {
		return 0, "", 0, false
	}
	if i < len(tmpl) && tmpl[i] == ',' {
		j := i + 1
		for j < len(tmpl) && tmpl[j] != '}' && tmpl[j] != '{' {
			j++
		}
		if j >= len(tmpl) || tmpl[j] != '}' {
			return 0, "", 0, false
		}
		return n, strings.TrimSpace(tmpl[i+1 : j]), j + 1, true
	}
	if i < len(tmpl) && tmpl[i] == '}' {
		return n, "", i + 1, true
	}
	return 0, "", 0, false
}

// renderPlaceholder reproduces the literal placeholder text for arguments
// the caller did not supply.
func (s segment) renderPlaceholder() string {
	if s.style != "" {
		return "{" + strconv.Itoa(s.arg) + "," + s.style + "}"
	}
	return "{" + strconv.Itoa(s.arg) + "}"
}

// templateCache memoizes parsed templates. Purely an optimization; behavior
// is identical to parsing per call.
type templateCache struct {
	cache sync.Map // string -> []segment
}

func (c *templateCache) parse(tmpl string) []segment {
	if v, ok := c.cache.Load(tmpl); ok {
		return v.([]segment)
	}
	segs := parseTemplate(tmpl)
	c.cache.Store(tmpl, segs)
	return segs
}
