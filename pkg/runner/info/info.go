package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/viper"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/store"
)

type Info struct {
	Config  store.Config
	Session *app.Session
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output

	if override := os.Getenv("TIMELINE_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TIMELINE_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "TIMELINE_CONFIG_PATH env var not set")
	}
	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintln(out, "Config file: ", used)
	} else {
		_, _ = fmt.Fprintln(out, "Config file:  none, using defaults")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"))
	tbl.AddRow(store.KeyTimelineFile, n.Config.TimelineFile())
	tbl.AddRow(store.KeyHeaderFormat, n.Config.HeaderFormat())
	tbl.AddRow(store.KeyDateFormat, n.Config.DateFormat())
	tbl.AddRow(store.KeyDefaultView, n.Config.DefaultView())
	tbl.AddRow(store.KeyShowJumpToToday, n.Config.ShowJumpToToday())
	tbl.AddRow(store.KeyWeekWindow, fmt.Sprintf("%d days", n.Config.WeekWindowDays()))
	tbl.AddRow(store.KeySnapshotPath, n.Config.SnapshotPath())
	tbl.AddRow(store.KeySnapshotLimit, n.Config.SnapshotLimit())
	_, _ = fmt.Fprintln(out, tbl)

	if n.Session == nil {
		return nil
	}
	if n.Session.Disabled() {
		_, _ = color.New(color.FgRed).Fprintln(out, "\nTimeline file unavailable: ", n.Session.Path())
		return nil
	}

	doc := n.Session.Document()
	_, _ = fmt.Fprintf(out, "\n%d days, %d tasks\n", len(doc.Days), doc.Tasks())
	if len(doc.Anomalies) > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(out, "%d lines were not understood:\n", len(doc.Anomalies))
		for _, a := range doc.Anomalies {
			_, _ = fmt.Fprintf(out, "  %d: %s\n", a.Line, a.Text)
		}
	}
	return nil
}
