package glyph

import "tableflip.dev/timeline/pkg/timeline"

// Glyph describes how a kind of line is drawn.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

// Mark identifies the glyph for a task line.
type Mark int

const (
	Open Mark = iota
	Done
	Bullet
	Today
	Unresolved
)

// DefaultGlyphs is indexed by Mark.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "[ ]",
		Symbol:  "☐",
		Meaning: "open task",
	}, {
		Key:     "[x]",
		Symbol:  "☑",
		Meaning: "completed task",
	}, {
		Key:     "-",
		Symbol:  "•",
		Meaning: "bullet",
	}, {
		Key:     "today",
		Symbol:  "●",
		Meaning: "today's day",
	}, {
		Key:     "?",
		Symbol:  "◌",
		Meaning: "header that is not a date",
	}}
}

func (m Mark) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Mark) String() string {
	return m.Glyph().String()
}

// ForTask picks the mark for t.
func ForTask(t *timeline.Task) Mark {
	switch {
	case !t.Checkbox:
		return Bullet
	case t.Completed:
		return Done
	default:
		return Open
	}
}

// ForDay picks the header mark for d, or false when d needs none.
func ForDay(d *timeline.Day) (Mark, bool) {
	switch {
	case d.IsToday:
		return Today, true
	case !d.Resolved:
		return Unresolved, true
	default:
		return 0, false
	}
}
