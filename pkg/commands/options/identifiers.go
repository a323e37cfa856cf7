package options

import (
	"github.com/spf13/cobra"
)

// IDOptions control whether task ids are printed next to each task.
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}
