// Package report summarises progress over a window of days.
package report

import (
	"context"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
	"tableflip.dev/timeline/pkg/timeutil"
)

type Report struct {
	Session *app.Session
	// Window is a span such as "1w" looking back from today.
	Window string
	Output string
}

func (n *Report) Do(ctx context.Context) error {
	days, _, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	now := n.Session.Now()
	r := n.Session.Report(now.AddDate(0, 0, -(days - 1)), now)

	pp := printers.PrettyPrint{}
	if n.Output != "" && n.Output != printers.FormatText {
		return pp.Export(n.Output, r)
	}
	pp.Report(r)
	return nil
}

// Overdue lists open tasks left on earlier days.
type Overdue struct {
	Session *app.Session
	ShowID  bool
	Output  string
}

func (n *Overdue) Do(ctx context.Context) error {
	items := n.Session.OverdueTasks()
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.Output != "" && n.Output != printers.FormatText {
		return pp.Export(n.Output, items)
	}
	pp.Overdue(items)
	return nil
}
