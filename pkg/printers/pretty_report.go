package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/glyph"
	"tableflip.dev/timeline/pkg/store"
)

// Report prints completed and open checkbox tasks per day.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	w := pp.out()
	faint := color.New(color.Faint)
	pp.Title(fmt.Sprintf("Report %s to %s", r.Since.Format("Jan 2"), r.Until.Format("Jan 2, 2006")))
	if len(r.Sections) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(w, " nothing to report\n\n")
		return
	}
	for _, s := range r.Sections {
		pp.DayTitle(s.Day)
		for _, item := range s.Completed {
			_, _ = fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", item.Depth), glyph.Done, item.Task.Text)
		}
		for _, item := range s.Open {
			_, _ = fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", item.Depth), glyph.Open, item.Task.Text)
		}
		pp.NewLine()
	}
	_, _ = faint.Fprintf(w, "%d of %d tasks done\n", r.Done, r.Total)
}

// Overdue prints open tasks left behind on earlier days.
func (pp *PrettyPrint) Overdue(items []app.Overdue) {
	if len(items) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "nothing overdue")
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Day"), bold.Sprint("Age"), bold.Sprint("Task"))
	} else {
		tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Age"), bold.Sprint("Task"))
	}
	for _, o := range items {
		age := fmt.Sprintf("%dd", o.Age)
		if pp.ShowID {
			tbl.AddRow(y.Sprint(shortID(o.Task.ID)), o.Day.Display, age, o.Task.Text)
		} else {
			tbl.AddRow(o.Day.Display, age, o.Task.Text)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// History prints stored snapshots, newest first.
func (pp *PrettyPrint) History(snaps []store.Snapshot) {
	if len(snaps) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "no snapshots")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Taken"), bold.Sprint("Size"))
	for _, s := range snaps {
		tbl.AddRow(s.Key, s.Taken.Local().Format("Mon Jan 2 15:04:05"), fmt.Sprintf("%dB", s.Size))
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
