package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/view"
)

// ViewOptions select what part of the timeline to show.
type ViewOptions struct {
	View   string
	Window string
	Filter string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVarP(&o.View, "view", "v", "",
		"View to show: timeline, unsorted, weekly or calendar. Defaults to the configured view.")
	cmd.Flags().StringVarP(&o.Window, "window", "w", "",
		`Weekly view span either side of today, e.g. "1w" or "10d".`)
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "",
		"Only show tasks whose text contains this.")
}

// Type resolves the view flag, falling back to def.
func (o *ViewOptions) Type(def view.Type) (view.Type, error) {
	if o.View == "" {
		return def, nil
	}
	return view.ParseType(o.View)
}
