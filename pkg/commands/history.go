package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the snapshots taken before each change.",
		Example: `
timeline history
timeline history -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := history.History{Session: s, Snapshots: s.Snapshots, Output: oo.Output}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addRestore(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "restore [key]",
		Short: "Put a snapshot back as the timeline file. Defaults to the newest.",
		Example: `
timeline restore
timeline restore 20240315T093000.000000000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			r := history.Restore{Session: s}
			if len(args) == 1 {
				r.Key = args[0]
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
