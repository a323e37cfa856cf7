package timeutil

import (
	"regexp"
	"strconv"
	"strings"
)

// ISOPattern is the canonical day pattern used for keys.
const (
	ISOPattern = "YYYY-MM-DD"
	layoutISO  = "2006-01-02"
)

type token struct {
	pattern string
	parse   string
	format  string
}

// tokens are matched longest first at each position.
var tokens = []token{
	{"YYYY", "2006", "2006"},
	{"YY", "06", "06"},
	{"MMMM", "January", "January"},
	{"MMM", "Jan", "Jan"},
	{"MM", "1", "01"},
	{"M", "1", "1"},
	{"dddd", "Monday", "Monday"},
	{"ddd", "Mon", "Mon"},
	{"DD", "2", "02"},
	{"Do", "2", "2"},
	{"D", "2", "2"},
}

// ordinalSuffix matches a day number followed by its English suffix.
var ordinalSuffix = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)\b`)

// ParseLayout translates a YYYY/MM/DD style pattern into a Go layout that
// accepts both padded and unpadded days and months.
func ParseLayout(pattern string) string {
	return translate(pattern, true)
}

// FormatLayout translates a YYYY/MM/DD style pattern into a Go layout that
// renders padded fields where the pattern asks for them.
func FormatLayout(pattern string) string {
	return translate(pattern, false)
}

// uses reports whether pattern contains the named token.
func uses(pattern, name string) bool {
	found := false
	walk(pattern, func(tok *token, _ byte) {
		if tok != nil && tok.pattern == name {
			found = true
		}
	})
	return found
}

// hasYear is false for patterns like "MMMM D" that leave the year out.
func hasYear(pattern string) bool {
	return uses(pattern, "YYYY") || uses(pattern, "YY")
}

// stripOrdinals turns "15th" into "15" so Go layouts can parse it.
func stripOrdinals(text string) string {
	return ordinalSuffix.ReplaceAllString(text, "$1")
}

// ordinal renders a day of the month with its suffix, 1st through 31st.
func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(day) + suffix
}

// walk visits pattern left to right, calling fn with the matched token or,
// for literal bytes, nil and the byte.
func walk(pattern string, fn func(tok *token, lit byte)) {
	for i := 0; i < len(pattern); {
		matched := false
		for j := range tokens {
			if strings.HasPrefix(pattern[i:], tokens[j].pattern) {
				fn(&tokens[j], 0)
				i += len(tokens[j].pattern)
				matched = true
				break
			}
		}
		if !matched {
			fn(nil, pattern[i])
			i++
		}
	}
}

func translate(pattern string, parse bool) string {
	var b strings.Builder
	walk(pattern, func(tok *token, lit byte) {
		switch {
		case tok == nil:
			b.WriteByte(lit)
		case parse:
			b.WriteString(tok.parse)
		default:
			b.WriteString(tok.format)
		}
	})
	return b.String()
}
