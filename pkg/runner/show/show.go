// Package show prints the timeline through one of its views.
package show

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
	"tableflip.dev/timeline/pkg/timeutil"
	"tableflip.dev/timeline/pkg/view"
)

type Show struct {
	Session    *app.Session
	View       view.Type
	WindowDays int
	Filter     string
	// Today limits output to today's day.
	Today  bool
	ShowID bool
	// Output is text, json or yaml.
	Output string
	Out    io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	now := n.Session.Now()
	doc := view.Build(n.Session.Document(), n.View, view.Options{Now: now, WindowDays: n.WindowDays}, n.Filter)
	if n.Today {
		i := doc.TodayIndex()
		if i < 0 {
			return fmt.Errorf("no day for today (%s) in %s", timeutil.Key(now), n.Session.Path())
		}
		doc.Days = doc.Days[i : i+1]
	}

	if n.Output != "" && n.Output != printers.FormatText {
		return printers.Export(out, n.Output, doc)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	if n.View == view.Calendar {
		pp.Calendar(now, doc)
	}
	pp.Document(doc, nil)
	return nil
}
