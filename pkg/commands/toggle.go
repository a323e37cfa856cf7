package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"complete", "done"},
		Short:   "Check or uncheck a task.",
		Example: `
timeline toggle 3f2a
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			r := toggle.Toggle{Session: s, ID: args[0]}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
