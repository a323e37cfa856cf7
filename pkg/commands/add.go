package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DayOptions{}
	ido := &options.IDOptions{}
	bullet := false

	cmd := &cobra.Command{
		Use:     "add <text>",
		Aliases: []string{"task"},
		Short:   "Add a task to the end of a day.",
		Example: `
timeline add call the plumber
timeline add -d tomorrow "draft slides [due:: friday]"
timeline add -d 2024-03-15 --bullet picked up groceries
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			r := add.Add{
				Session: s,
				Day:     do.Day,
				Message: strings.Join(args, " "),
				Bullet:  bullet,
				ShowID:  ido.ShowID,
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&bullet, "bullet", "b", false, "Add a plain bullet instead of a checkbox task.")

	topLevel.AddCommand(cmd)
}
