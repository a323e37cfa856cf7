package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/timeline"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(timeline completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(timeline completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskCompletions offers the ids of tasks whose id or text starts with the
// word being completed. It never creates the timeline file.
func taskCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := store.LoadConfig()
	if err != nil || !store.NewDisk().Exists(cfg.TimelineFile()) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s := &app.Session{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewID:  app.SequentialIDs(),
	}
	if err := s.Open(context.Background()); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	prefix := strings.ToLower(toComplete)
	for _, d := range s.Document().Days {
		d.Walk(func(t *timeline.Task) bool {
			if strings.HasPrefix(strings.ToLower(t.ID), prefix) || strings.HasPrefix(strings.ToLower(t.Text), prefix) {
				out = append(out, t.ID+"\t"+t.Text)
			}
			return true
		})
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
