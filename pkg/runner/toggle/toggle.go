// Package toggle provides the runner logic for checking and unchecking tasks.
package toggle

import (
	"context"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
)

// Toggle flips the completion state of a checkbox task.
type Toggle struct {
	Session *app.Session
	ID      string
}

// Do toggles the task and prints the day it belongs to.
func (n *Toggle) Do(ctx context.Context) error {
	id, err := n.Session.ExpandID(n.ID)
	if err != nil {
		return err
	}
	if _, err := n.Session.Toggle(id); err != nil {
		return err
	}

	doc := n.Session.Document()
	_, day, err := doc.Locate(id)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.Document(doc, []int{day})
	return nil
}
