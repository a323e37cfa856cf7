package remove

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/timeline/pkg/app"
)

// Remove deletes a task and everything nested under it.
type Remove struct {
	Session *app.Session
	ID      string
}

func (n *Remove) Do(ctx context.Context) error {
	id, err := n.Session.ExpandID(n.ID)
	if err != nil {
		return err
	}
	doc := n.Session.Document()
	t, err := doc.Find(id)
	if err != nil {
		return err
	}
	if err := n.Session.Delete(id); err != nil {
		return err
	}
	nested := t.Count() - 1
	msg := fmt.Sprintf("Deleted %q", t.Text)
	if nested > 0 {
		msg += fmt.Sprintf(" and %d nested", nested)
	}
	_, _ = color.New(color.Faint).Fprintln(color.Output, msg)
	return nil
}
