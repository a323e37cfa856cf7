package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification for a file.
type EventType int

const (
	// EventModified means the file was written or (re)created.
	EventModified EventType = iota
	// EventRenamed means the file moved to NewPath.
	EventRenamed
	// EventDeleted means the file no longer exists at Path.
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventModified:
		return "modified"
	case EventRenamed:
		return "renamed"
	case EventDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted when the watched file changes.
type Event struct {
	Type    EventType
	Path    string
	NewPath string
}

// throttleDelay coalesces the burst of events an editor save produces.
const throttleDelay = 100 * time.Millisecond

// WatchFile streams change events for path until ctx is cancelled. The
// parent directory is watched so that atomic saves (write to a temporary
// file, rename over the original) and re-creation after a delete are seen.
// fsnotify does not report where a file was renamed to, so a rename away
// is reported as EventDeleted. Callers should drain the channel; it is
// closed once ctx is done or the watcher fails.
func WatchFile(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)

	go func() {
		var (
			mu     sync.Mutex
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		}()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// Drop when the consumer is behind; the next event triggers
				// a full reload anyway.
			}
		}

		throttle := newEventThrottle(throttleDelay, func() Event {
			if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
				return Event{Type: EventDeleted, Path: path}
			}
			return Event{Type: EventModified, Path: path}
		})
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Without knowing what was lost, ask for a reload.
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				throttle.Enqueue(send)
			}
		}
	}()

	return events, nil
}

// eventThrottle collapses a burst of raw notifications into a single event
// whose type is decided when the burst settles.
type eventThrottle struct {
	mu     sync.Mutex
	timer  *time.Timer
	delay  time.Duration
	settle func() Event
}

func newEventThrottle(delay time.Duration, settle func() Event) *eventThrottle {
	return &eventThrottle{delay: delay, settle: settle}
}

func (t *eventThrottle) Enqueue(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		send(t.settle())
	})
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
