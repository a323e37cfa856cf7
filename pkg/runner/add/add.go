package add

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/printers"
)

type Add struct {
	Session *app.Session
	Day     string
	Message string
	// Bullet adds a plain bullet instead of a checkbox task.
	Bullet bool
	ShowID bool
}

func (n *Add) Do(ctx context.Context) error {
	if strings.TrimSpace(n.Message) == "" {
		return errors.New("nothing to add")
	}
	day, err := n.Session.ResolveDay(n.Day)
	if err != nil {
		return err
	}
	if _, err := n.Session.Add(day, n.Message, !n.Bullet); err != nil {
		return err
	}

	doc := n.Session.Document()
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Document(doc, []int{day})
	return nil
}
