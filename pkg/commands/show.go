package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/show"
	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/timeutil"
	"tableflip.dev/timeline/pkg/view"
)

func addShow(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "ls"},
		Short:   "Print the timeline.",
		Example: `
timeline show
timeline show -v weekly -w 3d
timeline show -v calendar
timeline show -f report -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			typ, err := vo.Type(s.Config.DefaultView())
			if err != nil {
				return oo.HandleError(err)
			}
			days, err := windowDays(vo.Window, s.Config)
			if err != nil {
				return oo.HandleError(err)
			}
			r := show.Show{
				Session:    s,
				View:       typ,
				WindowDays: days,
				Filter:     vo.Filter,
				ShowID:     ido.ShowID,
				Output:     oo.Output,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addToday(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the tasks for today.",
		Example: `
timeline today
timeline today -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := show.Show{
				Session:    s,
				View:       view.Timeline,
				Today:      true,
				ShowID:     ido.ShowID,
				Output:     oo.Output,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// windowDays resolves a --window flag, falling back to the configured span.
func windowDays(flag string, cfg store.Config) (int, error) {
	if flag == "" {
		return cfg.WeekWindowDays(), nil
	}
	days, _, err := timeutil.ParseWindow(flag)
	return days, err
}
