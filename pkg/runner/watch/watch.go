// Package watch re-prints the timeline whenever its file changes.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/runner/show"
)

type Watch struct {
	Session *app.Session
	// Show renders each refresh.
	Show *show.Show
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Show == nil {
		return errors.New("watch: nothing to show")
	}
	events, err := n.Session.Watch(ctx)
	if err != nil {
		return err
	}
	if err := n.Show.Do(ctx); err != nil {
		return err
	}

	faint := color.New(color.Faint)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			// Failures are already surfaced through the session notifier.
			_ = n.Session.HandleEvent(ctx, ev)
			_, _ = faint.Fprintln(color.Output, fmt.Sprintf("--- %s %s at %s", n.Session.Path(), ev.Type, n.Session.Now().Format("15:04:05")))
			if n.Session.Disabled() {
				continue
			}
			if err := n.Show.Do(ctx); err != nil {
				return err
			}
		}
	}
}
