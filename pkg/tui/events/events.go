// Package events defines the messages the timeline UI passes through the
// Bubble Tea runtime.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/timeline/pkg/store"
)

// FileChangedMsg carries a change notification for the timeline file.
type FileChangedMsg struct {
	Event store.Event
}

// Describe renders the change for logs.
func (m FileChangedMsg) Describe() string {
	if m.Event.NewPath != "" {
		return fmt.Sprintf(`%s path:%q new:%q`, m.Event.Type, m.Event.Path, m.Event.NewPath)
	}
	return fmt.Sprintf(`%s path:%q`, m.Event.Type, m.Event.Path)
}

// WatchClosedMsg is sent once the file watcher stops.
type WatchClosedMsg struct{}

// WaitForChange blocks on ch and turns the next event into a message.
func WaitForChange(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return WatchClosedMsg{}
		}
		return FileChangedMsg{Event: ev}
	}
}
