// Package history lists and restores timeline snapshots.
package history

import (
	"context"
	"errors"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
	"tableflip.dev/timeline/pkg/store"
)

type History struct {
	Session   *app.Session
	Snapshots *store.Snapshots
	Output    string
}

func (n *History) Do(ctx context.Context) error {
	if n.Snapshots == nil {
		return errors.New("snapshots are disabled, set " + store.KeySnapshotPath)
	}
	list := n.Snapshots.List(ctx)
	pp := printers.PrettyPrint{}
	if n.Output != "" && n.Output != printers.FormatText {
		return pp.Export(n.Output, list)
	}
	pp.History(list)
	return nil
}

// Restore writes a snapshot back to the timeline file. An empty key means
// the newest snapshot.
type Restore struct {
	Session *app.Session
	Key     string
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Session.Snapshots == nil {
		return errors.New("snapshots are disabled, set " + store.KeySnapshotPath)
	}
	key := n.Key
	if key == "" {
		latest, ok := n.Session.Snapshots.Latest(ctx)
		if !ok {
			return errors.New("no snapshots to restore")
		}
		key = latest
	}
	if err := n.Session.Restore(ctx, key); err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Document(n.Session.Document(), nil)
	return nil
}
