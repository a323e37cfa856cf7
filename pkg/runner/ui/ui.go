// Package ui runs the interactive timeline.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/timeline/pkg/app"
	teaui "tableflip.dev/timeline/pkg/tui/app"
	"tableflip.dev/timeline/pkg/view"
)

// ErrNotTerminal is returned when stdout cannot host the UI.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal; use show instead")

type UI struct {
	Session     *app.Session
	View        view.Type
	WindowDays  int
	JumpToToday bool
}

func (d *UI) Do(ctx context.Context) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	return teaui.Run(ctx, d.Session, teaui.Options{
		View:        d.View,
		WindowDays:  d.WindowDays,
		JumpToToday: d.JumpToToday,
		Logger:      d.Session.Logger,
	})
}
