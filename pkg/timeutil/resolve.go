package timeutil

import (
	"strings"
	"time"
)

// Resolution is the outcome of resolving a day header.
type Resolution struct {
	// Key is the canonical YYYY-MM-DD date, or the header text verbatim when
	// nothing matched.
	Key string
	// Display is the header text exactly as written.
	Display string
	// Resolved is false when Key fell back to the header text.
	Resolved bool
	// Date is set when Resolved is true.
	Date time.Time
}

// fallbackPatterns are tried, in order, after the configured pattern.
var fallbackPatterns = []string{
	"YYYY-MM-DD",
	"YYYY/MM/DD",
	"MM/DD/YYYY",
	"DD/MM/YYYY",
	"MMM D, YYYY",
	"MMMM D, YYYY",
}

// Candidates returns the patterns tried for a header, configured first,
// without duplicates.
func Candidates(configured string) []string {
	out := make([]string, 0, len(fallbackPatterns)+1)
	seen := make(map[string]struct{}, len(fallbackPatterns)+1)
	for _, p := range append([]string{configured}, fallbackPatterns...) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Resolve maps header text to a canonical day key. Keywords today, tomorrow
// and yesterday are matched case-insensitively against today's date.
func Resolve(header string, today time.Time, configured string) Resolution {
	text := strings.TrimSpace(header)
	r := Resolution{Key: text, Display: header}

	day := Day(today)
	switch strings.ToLower(text) {
	case "today":
		return r.at(day)
	case "tomorrow":
		return r.at(day.AddDate(0, 0, 1))
	case "yesterday":
		return r.at(day.AddDate(0, 0, -1))
	}

	for _, pattern := range Candidates(configured) {
		if t, ok := parseDay(pattern, text, today); ok {
			return r.at(t)
		}
	}
	return r
}

func parseDay(pattern, text string, today time.Time) (time.Time, bool) {
	if uses(pattern, "Do") {
		text = stripOrdinals(text)
	}
	t, err := time.ParseInLocation(ParseLayout(pattern), text, today.Location())
	if err != nil {
		return time.Time{}, false
	}
	if !hasYear(pattern) {
		// Year-less headers belong to the current year. Feb 29 outside a
		// leap year does not resolve.
		y := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, today.Location())
		if y.Month() != t.Month() {
			return time.Time{}, false
		}
		t = y
	}
	return t, true
}

func (r Resolution) at(t time.Time) Resolution {
	r.Date = t
	r.Key = Key(t)
	r.Resolved = true
	return r
}

// IsToday reports whether key names the same day as today.
func IsToday(key string, today time.Time) bool {
	return key == Key(today)
}

// Format renders t using a YYYY/MM/DD style pattern.
func Format(t time.Time, pattern string) string {
	if strings.TrimSpace(pattern) == "" {
		pattern = ISOPattern
	}
	if !uses(pattern, "Do") {
		return t.Format(FormatLayout(pattern))
	}
	// Go layouts have no ordinal day, so format around it.
	var out, seg strings.Builder
	walk(pattern, func(tok *token, lit byte) {
		switch {
		case tok == nil:
			seg.WriteByte(lit)
		case tok.pattern == "Do":
			out.WriteString(t.Format(seg.String()))
			out.WriteString(ordinal(t.Day()))
			seg.Reset()
		default:
			seg.WriteString(tok.format)
		}
	})
	out.WriteString(t.Format(seg.String()))
	return out.String()
}
