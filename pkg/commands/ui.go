package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive timeline.",
		Example: `
timeline ui
timeline ui -v weekly -w 2w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
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
			i := ui.UI{
				Session:     s,
				View:        typ,
				WindowDays:  days,
				JumpToToday: s.Config.ShowJumpToToday(),
			}
			return i.Do(ctx)
		},
	}

	cmd.Flags().StringVarP(&vo.View, "view", "v", "",
		"View to start in: timeline, unsorted, weekly or calendar.")
	cmd.Flags().StringVarP(&vo.Window, "window", "w", "",
		`Weekly view span either side of today, e.g. "1w" or "10d".`)

	topLevel.AddCommand(cmd)
}
