package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	do := &options.DayOptions{}

	cmd := &cobra.Command{
		Use:     "move <id>",
		Aliases: []string{"mv", "migrate"},
		Short:   "Move a task and its subtasks to another day or position.",
		Example: `
timeline move 3f2a --today
timeline move 3f2a --tomorrow
timeline move 3f2a -d 2024-03-18 -p 0
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := do.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			r := move.Move{
				Session:  s,
				ID:       args[0],
				Day:      do.Day,
				Position: do.Position,
				Today:    do.Today,
				Tomorrow: do.Tomorrow,
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddMoveArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
