// Package outline converts between timeline text and the timeline model.
package outline

import (
	"regexp"
	"strings"
)

// DefaultMarker introduces a day header line.
const DefaultMarker = "##"

// Kind is the structural role of a line.
type Kind int

const (
	KindOther Kind = iota
	KindHeader
	KindCheckbox
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindCheckbox:
		return "checkbox"
	case KindBullet:
		return "bullet"
	default:
		return "other"
	}
}

var (
	checkboxPattern = regexp.MustCompile(`^([ \t]*)- \[([ xX])\](?: (.*))?$`)
	bulletPattern   = regexp.MustCompile(`^([ \t]*)- (.*)$`)
)

// Line is a classified line.
type Line struct {
	Kind Kind
	// Text is the header text for headers and the raw task text, metadata
	// included, for tasks.
	Text      string
	Indent    int
	Completed bool
}

// Level is the nesting depth implied by the indentation, two characters per
// level. Tabs count as one character.
func (l Line) Level() int {
	return l.Indent / 2
}

// Classify determines the role of line under the given header marker.
func Classify(line, marker string) Line {
	if marker == "" {
		marker = DefaultMarker
	}
	if strings.HasPrefix(line, marker+" ") {
		return Line{Kind: KindHeader, Text: strings.TrimSpace(line[len(marker)+1:])}
	}
	if m := checkboxPattern.FindStringSubmatch(line); m != nil {
		return Line{
			Kind:      KindCheckbox,
			Text:      m[3],
			Indent:    len(m[1]),
			Completed: m[2] == "x" || m[2] == "X",
		}
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Line{Kind: KindBullet, Text: m[2], Indent: len(m[1])}
	}
	return Line{Kind: KindOther, Text: line}
}
