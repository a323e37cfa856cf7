package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "strike"},
		Short:   "Delete a task and everything nested under it.",
		Example: `
timeline delete 3f2a
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			r := remove.Remove{Session: s, ID: args[0]}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
