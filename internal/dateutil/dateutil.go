// Package dateutil expands date placeholders in card text.
//
// A card heading is often the day it was written ("03/22"). Rather than
// typing it, users pass "today" or "today:FORMAT" and the CLI fills in the
// current date.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// Keyword starts a date placeholder.
const Keyword = "today"

// DefaultDateFormat matches the sample card heading.
const DefaultDateFormat = "MM/DD"

// layoutTokens maps format tokens to time layout elements, longest first
// so "MMMM" wins over "MM".
var layoutTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named formats accepted after "today:".
var Presets = map[string]string{
	"short": "MM/DD",
	"iso":   "YYYY-MM-DD",
	"long":  "MMMM D, YYYY",
	"cn":    "YYYY年M月D日",
}

// Layout converts a token format to a time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets is literal:
// "[Day] D" keeps "Day". Other characters pass through unchanged.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if layout, n := matchToken(rest); n > 0 {
			b.WriteString(layout)
			rest = rest[n:]
			continue
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}

	return b.String(), nil
}

func matchToken(s string) (layout string, n int) {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			return t.layout, len(t.token)
		}
	}
	return "", 0
}

// Expand resolves a date placeholder against now.
//   - "today"         -> now as MM/DD
//   - "today:FORMAT"  -> now in FORMAT (tokens or a preset name)
//   - anything else   -> returned unchanged
//
// Matching of the keyword and preset names ignores case.
func Expand(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, Keyword) {
		return value, nil
	}

	format := DefaultDateFormat
	switch rest := value[len(Keyword):]; {
	case rest == "":
	case rest[0] == ':':
		format = rest[1:]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, Keyword+":")
		}
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		// "todays news" is text, not a placeholder.
		return value, nil
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
