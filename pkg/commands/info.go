package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the timeline file.",
		Example: `
timeline info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			r := info.Info{}
			// The settings are still worth printing when the file is broken.
			if s, err := openSession(cmd.Context()); err != nil {
				_, _ = color.New(color.FgRed).Fprintln(os.Stderr, fmt.Sprintf("error: %v", err))
			} else {
				r.Session = s
				r.Config = s.Config
			}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
