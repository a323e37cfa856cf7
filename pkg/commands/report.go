package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	window := "1w"

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise finished and open tasks over recent days.",
		Example: `
timeline report
timeline report -w 2w -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{Session: s, Window: window, Output: oo.Output}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", window, `How far back to look, e.g. "3d" or "2w".`)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addOverdue(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List open tasks left behind on earlier days.",
		Example: `
timeline overdue
timeline overdue -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Overdue{Session: s, ShowID: ido.ShowID, Output: oo.Output}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
