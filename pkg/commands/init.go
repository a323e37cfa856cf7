package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addInit(topLevel *cobra.Command) {
	config := ""

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the timeline file, and optionally a config file.",
		Example: `
timeline init
timeline --file ~/notes/Timeline.md init
timeline init --config ~/.timeline.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(color.Output, "Timeline file:", s.Path())

			if config == "" {
				return nil
			}
			if err := viper.SafeWriteConfigAs(config); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, _ = fmt.Fprintln(color.Output, "Config file:", config)
			return nil
		},
	}

	cmd.Flags().StringVar(&config, "config", "", "Also write the current settings to this config file. Existing files are left alone.")

	topLevel.AddCommand(cmd)
}
