package outline

import (
	"strings"

	"tableflip.dev/timeline/pkg/metadata"
	"tableflip.dev/timeline/pkg/timeline"
)

// Title is the first line of every written timeline.
const Title = "# Timeline"

// Serialize renders doc back to timeline text. Metadata tags are always
// written at the end of their line; checkboxes are written in lower case.
func Serialize(doc *timeline.Document, marker string) string {
	if marker == "" {
		marker = DefaultMarker
	}
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n\n")
	for _, day := range doc.Days {
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(day.Display)
		b.WriteString("\n\n")
		for _, t := range day.Tasks {
			writeTask(&b, t, 0)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTask renders a single task line, without its subtasks or newline.
func FormatTask(t *timeline.Task, level int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("- ")
	if t.Checkbox {
		if t.Completed {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	}
	b.WriteString(metadata.Encode(t.Text, t.Metadata))
	return b.String()
}

func writeTask(b *strings.Builder, t *timeline.Task, level int) {
	b.WriteString(FormatTask(t, level))
	b.WriteString("\n")
	for _, sub := range t.Subtasks {
		writeTask(b, sub, level+1)
	}
}
