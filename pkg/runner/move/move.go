package move

import (
	"context"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
)

// Move relocates a task, with its subtasks, to another day or position.
type Move struct {
	Session  *app.Session
	ID       string
	Day      string
	Position int // negative appends
	Today    bool
	Tomorrow bool
}

func (n *Move) Do(ctx context.Context) error {
	id, err := n.Session.ExpandID(n.ID)
	if err != nil {
		return err
	}

	switch {
	case n.Today:
		err = n.Session.MoveToToday(id)
	case n.Tomorrow:
		err = n.Session.MoveToTomorrow(id)
	default:
		var day int
		if day, err = n.Session.ResolveDay(n.Day); err != nil {
			return err
		}
		if n.Position < 0 {
			err = n.Session.MoveToEnd(id, day)
		} else {
			err = n.Session.Move(id, day, n.Position)
		}
	}
	if err != nil {
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
