package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/store"
)

var (
	ro     = &options.RootOptions{}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: base.Wrap80("A day-by-day task timeline kept in a plain Markdown file."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			l, err := ro.Logger()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ro.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddRootArgs(cmd, ro)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addToday(topLevel)
	addAdd(topLevel)
	addToggle(topLevel)
	addMove(topLevel)
	addDelete(topLevel)
	addWatch(topLevel)
	addInit(topLevel)
	addInfo(topLevel)
	addHistory(topLevel)
	addRestore(topLevel)
	addReport(topLevel)
	addOverdue(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// openSession loads the config and opens the timeline file. Notices go to
// stderr so they never mix with structured output.
func openSession(ctx context.Context) (*app.Session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	s := &app.Session{
		Config:   cfg,
		Notifier: &app.WriterNotifier{W: os.Stderr},
		Logger:   logger,
		NewID:    app.SequentialIDs(),
	}
	if path := cfg.SnapshotPath(); path != "" {
		snaps, err := store.OpenSnapshots(path, cfg.SnapshotLimit())
		if err != nil {
			return nil, err
		}
		s.Snapshots = snaps
	}
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
