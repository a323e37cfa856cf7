package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/show"
	"tableflip.dev/timeline/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the timeline and print it again whenever the file changes.",
		Example: `
timeline watch
timeline watch -v weekly
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			typ, err := vo.Type(s.Config.DefaultView())
			if err != nil {
				return err
			}
			days, err := windowDays(vo.Window, s.Config)
			if err != nil {
				return err
			}
			r := watch.Watch{
				Session: s,
				Show: &show.Show{
					Session:    s,
					View:       typ,
					WindowDays: days,
					Filter:     vo.Filter,
					ShowID:     ido.ShowID,
				},
			}
			return r.Do(ctx)
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}
