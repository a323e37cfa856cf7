package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeline/pkg/glyph"
	"tableflip.dev/timeline/pkg/metadata"
	"tableflip.dev/timeline/pkg/timeline"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("xxxxxxxx  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

// DayTitle prints a day header with its mark and checkbox progress.
func (pp *PrettyPrint) DayTitle(d *timeline.Day) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	if d.IsToday {
		t = color.New(color.Bold, color.Underline, color.FgHiCyan)
	}

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	if m, ok := glyph.ForDay(d); ok {
		_, _ = t.Fprint(pp.out(), m.String()+" ")
	}
	_, _ = t.Fprint(pp.out(), strings.TrimSpace(d.Display))

	done, total := d.Counts()
	switch {
	case total > 0:
		_, _ = c.Fprintf(pp.out(), " - %d/%d done\n", done, total)
	case len(d.Tasks) == 1:
		_, _ = c.Fprintln(pp.out(), " - 1 entry")
	default:
		_, _ = c.Fprintf(pp.out(), " - %d entries\n", len(d.Tasks))
	}
}

// Day prints a day header and its task tree.
func (pp *PrettyPrint) Day(d *timeline.Day) {
	pp.DayTitle(d)
	if len(d.Tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	for _, t := range d.Tasks {
		pp.Task(t, 0)
	}
	pp.NewLine()
}

// Document prints the days at the given indexes, or every day when
// indexes is nil.
func (pp *PrettyPrint) Document(doc *timeline.Document, indexes []int) {
	if indexes == nil {
		indexes = make([]int, len(doc.Days))
		for i := range doc.Days {
			indexes[i] = i
		}
	}
	if len(indexes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no days to show")
		return
	}
	for _, i := range indexes {
		if d, err := doc.Day(i); err == nil {
			pp.Day(d)
		}
	}
}

// Task prints t and its subtasks indented under it.
func (pp *PrettyPrint) Task(t *timeline.Task, depth int) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	p := color.New()
	if t.Checkbox && t.Completed {
		p = color.New(color.Faint, color.CrossedOut)
	}
	m := color.New(color.FgMagenta, color.Faint)

	if pp.ShowID {
		id := shortID(t.ID)
		_, _ = y.Fprint(pp.out(), id)
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(id)))
	}
	_, _ = p.Fprintf(pp.out(), "%s%s %s", strings.Repeat("  ", depth), glyph.ForTask(t), t.Text)
	if len(t.Metadata) > 0 {
		_, _ = m.Fprint(pp.out(), " ", metadata.Encode("", t.Metadata))
	}
	_, _ = fmt.Fprintln(pp.out())
	for _, sub := range t.Subtasks {
		pp.Task(sub, depth+1)
	}
}

// Key prints the glyph legend.
func (pp *PrettyPrint) Key() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Symbol"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Key, g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// shortID trims uuids to a prefix that is still unique in practice and
// still accepted by the id flags.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
