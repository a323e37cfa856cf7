package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Level grades a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a user-visible message raised by the session.
type Notice struct {
	Level   Level
	Message string
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// WriterNotifier prints notices to a terminal, coloured by level.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

func (w *WriterNotifier) Notify(n Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := color.New(color.FgCyan)
	switch n.Level {
	case LevelWarn:
		c = color.New(color.FgYellow)
	case LevelError:
		c = color.New(color.FgRed, color.Bold)
	}
	_, _ = fmt.Fprintln(w.W, c.Sprint(n.Message))
}

// Recorder keeps notices in memory, for tests and for the TUI status line.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Drain returns the recorded notices and forgets them.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}
