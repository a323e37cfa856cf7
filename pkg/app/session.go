package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/timeline/pkg/outline"
	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// Session owns the live timeline document for one open file. The CLI
// runners and the TUI share a single Session by pointer; all reads and
// writes of the file go through it.
//
// A Session is not safe for concurrent use. Callers feed it user actions
// and file events from one goroutine.
type Session struct {
	Store    store.FileStore
	Config   store.Config
	Clock    timeutil.Clock
	Notifier Notifier
	// Snapshots, when set, receives the previous file text before every
	// write.
	Snapshots *store.Snapshots
	Logger    *slog.Logger
	NewID     func() string

	path     string
	text     string
	doc      *timeline.Document
	disabled bool
	// dirty is set while doc holds changes the file never received.
	dirty bool
}

func (s *Session) defaults() {
	if s.Store == nil {
		s.Store = store.NewDisk()
	}
	if s.Config == nil {
		s.Config = store.DefaultSettings()
	}
	if s.Clock == nil {
		s.Clock = timeutil.SystemClock{}
	}
	if s.Notifier == nil {
		s.Notifier = Discard
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.NewID == nil {
		s.NewID = uuid.NewString
	}
	if s.doc == nil {
		s.doc = &timeline.Document{}
	}
}

// SequentialIDs numbers tasks in the order they are created. A freshly
// parsed file gets 1..n in document order, so ids printed by one command
// stay valid for the next until the file changes.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

// Open loads the configured timeline file, creating it from the default
// template when it does not exist. When the file cannot be read or created
// the session stays open with an empty, disabled document and the failure
// is reported through the Notifier.
func (s *Session) Open(ctx context.Context) error {
	s.defaults()
	s.path = s.Config.TimelineFile()
	if !s.Store.Exists(s.path) {
		s.Logger.Info("creating timeline file", "path", s.path)
		if err := s.Store.Write(s.path, store.DefaultTemplate); err != nil {
			return s.disable("create", err)
		}
		s.Notifier.Notify(Notice{Level: LevelInfo, Message: "Timeline file created: " + s.path})
	}
	return s.Reload(ctx)
}

// Reload re-reads the file and replaces the document. In-memory changes that
// were never written are discarded.
func (s *Session) Reload(ctx context.Context) error {
	s.defaults()
	if err := ctx.Err(); err != nil {
		return err
	}
	text, err := s.Store.Read(s.path)
	if err != nil {
		return s.disable("read", err)
	}
	if !s.disabled && !s.dirty && text == s.text && s.doc != nil {
		// Our own write echoing back through the watcher. Keeping the tree
		// keeps task ids stable for the caller.
		s.doc.MarkToday(s.Clock.Now())
		return nil
	}
	s.text = text
	s.disabled = false
	s.dirty = false
	s.doc = s.parse(text)
	s.Logger.Debug("timeline loaded", "path", s.path, "days", len(s.doc.Days), "tasks", s.doc.Tasks())
	for _, a := range s.doc.Anomalies {
		s.Logger.Debug("skipped line", "line", a.Line, "reason", a.Reason)
	}
	return nil
}

func (s *Session) parse(text string) *timeline.Document {
	return outline.Parse(text, outline.Options{
		Marker:     s.Config.HeaderFormat(),
		DateFormat: s.Config.DateFormat(),
		Now:        s.Clock.Now(),
		NewID:      s.NewID,
	})
}

func (s *Session) disable(op string, err error) error {
	s.disabled = true
	s.doc = &timeline.Document{}
	s.text = ""
	s.dirty = false
	perr := &PersistenceError{Op: op, Path: s.path, Err: err}
	s.Logger.Error("timeline unavailable", "op", op, "path", s.path, "err", err)
	s.Notifier.Notify(Notice{Level: LevelError, Message: fmt.Sprintf("Error opening timeline file %s: %v", s.path, err)})
	return perr
}

// HandleEvent applies a change notification for the timeline file.
func (s *Session) HandleEvent(ctx context.Context, ev store.Event) error {
	s.defaults()
	if !s.samePath(ev.Path) {
		return nil
	}
	s.Logger.Debug("file event", "type", ev.Type, "path", ev.Path)
	switch ev.Type {
	case store.EventModified:
		return s.Reload(ctx)
	case store.EventRenamed:
		if ev.NewPath != "" {
			s.path = ev.NewPath
		}
		return s.Reload(ctx)
	case store.EventDeleted:
		s.disabled = true
		s.doc = &timeline.Document{}
		s.text = ""
		s.dirty = false
		s.Notifier.Notify(Notice{Level: LevelWarn, Message: "Timeline file removed: " + s.path})
	}
	return nil
}

func (s *Session) samePath(p string) bool {
	if p == "" {
		return true
	}
	a, err1 := filepath.Abs(p)
	b, err2 := filepath.Abs(s.path)
	if err1 != nil || err2 != nil {
		return p == s.path
	}
	return a == b
}

// Watch streams change events for the current file.
func (s *Session) Watch(ctx context.Context) (<-chan store.Event, error) {
	s.defaults()
	return s.Store.Watch(ctx, s.path)
}

// Path is the file the session is bound to.
func (s *Session) Path() string { return s.path }

// Disabled reports whether the file is unavailable.
func (s *Session) Disabled() bool { return s.disabled }

// Now is the session clock.
func (s *Session) Now() time.Time {
	s.defaults()
	return s.Clock.Now()
}

// Document returns a deep copy of the current document with IsToday
// recomputed.
func (s *Session) Document() *timeline.Document {
	s.defaults()
	doc := s.doc.Clone()
	doc.MarkToday(s.Clock.Now())
	return doc
}

// Text is the serialised form of the current document.
func (s *Session) Text() string {
	s.defaults()
	return outline.Serialize(s.doc, s.Config.HeaderFormat())
}

// ResolveDay finds the day a reference names. The reference may be a day
// number (1-based, in file order), a date in any accepted header format, a
// keyword such as "today", or the header text itself.
func (s *Session) ResolveDay(ref string) (int, error) {
	s.defaults()
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.doc.Days) {
			return -1, fmt.Errorf("%w: %d", timeline.ErrDayNotFound, n)
		}
		return n - 1, nil
	}
	res := timeutil.Resolve(ref, s.Clock.Now(), s.Config.DateFormat())
	if i := s.doc.IndexOf(res.Key); i >= 0 {
		return i, nil
	}
	for i, d := range s.doc.Days {
		if strings.EqualFold(d.Display, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", timeline.ErrDayNotFound, ref)
}

// mutate applies fn to the live document and writes the result. Nothing is
// written when fn fails.
func (s *Session) mutate(action string, fn func(doc *timeline.Document) error) error {
	s.defaults()
	if s.disabled {
		return ErrDisabled
	}
	if err := fn(s.doc); err != nil {
		s.Logger.Debug("action rejected", "action", action, "err", err)
		return err
	}
	return s.save(action)
}

func (s *Session) save(action string) error {
	text := outline.Serialize(s.doc, s.Config.HeaderFormat())
	if s.Snapshots != nil && s.text != "" && s.text != text {
		if _, err := s.Snapshots.Put(s.text); err != nil {
			s.Logger.Warn("snapshot failed", "err", err)
		}
	}
	if err := s.Store.Write(s.path, text); err != nil {
		s.Logger.Error("save failed", "action", action, "path", s.path, "err", err)
		s.Notifier.Notify(Notice{Level: LevelError, Message: fmt.Sprintf("Error saving timeline: %v", err)})
		s.dirty = true
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	s.text = text
	s.dirty = false
	s.Logger.Debug("saved", "action", action, "path", s.path, "bytes", len(text))
	return nil
}

// Move places the task, with its subtasks, at pos among day's top-level
// tasks.
func (s *Session) Move(id string, day, pos int) error {
	return s.mutate("move", func(doc *timeline.Document) error {
		return doc.Move(id, day, pos)
	})
}

// MoveToEnd appends the task to day.
func (s *Session) MoveToEnd(id string, day int) error {
	return s.mutate("move", func(doc *timeline.Document) error {
		return doc.MoveToEnd(id, day)
	})
}

// MoveToToday appends the task to today's day. The day must already exist.
func (s *Session) MoveToToday(id string) error {
	return s.moveToOffset(id, 0)
}

// MoveToTomorrow appends the task to tomorrow's day. The day must already
// exist.
func (s *Session) MoveToTomorrow(id string) error {
	return s.moveToOffset(id, 1)
}

func (s *Session) moveToOffset(id string, days int) error {
	s.defaults()
	key := timeutil.Key(timeutil.Day(s.Clock.Now()).AddDate(0, 0, days))
	return s.mutate("move", func(doc *timeline.Document) error {
		if _, err := doc.Find(id); err != nil {
			return err
		}
		return doc.MoveToKey(id, key)
	})
}

// Toggle flips a checkbox task. Plain bullets are left alone and
// timeline.ErrNotCheckbox is returned without writing.
func (s *Session) Toggle(id string) (*timeline.Task, error) {
	var toggled *timeline.Task
	err := s.mutate("toggle", func(doc *timeline.Document) error {
		t, err := doc.Toggle(id)
		toggled = t
		return err
	})
	if toggled != nil {
		toggled = toggled.Clone()
	}
	return toggled, err
}

// Delete removes the task and everything nested under it.
func (s *Session) Delete(id string) error {
	return s.mutate("delete", func(doc *timeline.Document) error {
		return doc.Delete(id)
	})
}

// Add appends a new top-level task to day. Metadata tags in text are
// parsed.
func (s *Session) Add(day int, text string, checkbox bool) (*timeline.Task, error) {
	var added *timeline.Task
	err := s.mutate("add", func(doc *timeline.Document) error {
		t, err := doc.Add(day, s.NewID(), text, checkbox)
		added = t
		return err
	})
	if added != nil {
		added = added.Clone()
	}
	return added, err
}

// Restore writes the snapshot stored under key back to the timeline file.
// The text being replaced is itself snapshotted first.
func (s *Session) Restore(ctx context.Context, key string) error {
	s.defaults()
	if s.Snapshots == nil {
		return errors.New("app: snapshots are not configured")
	}
	text, err := s.Snapshots.Read(key)
	if err != nil {
		return err
	}
	if s.text != "" && s.text != text {
		if _, err := s.Snapshots.Put(s.text); err != nil {
			s.Logger.Warn("snapshot failed", "err", err)
		}
	}
	if err := s.Store.Write(s.path, text); err != nil {
		s.Notifier.Notify(Notice{Level: LevelError, Message: fmt.Sprintf("Error restoring timeline: %v", err)})
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	s.text = text
	s.disabled = false
	s.dirty = false
	s.doc = s.parse(text)
	s.Notifier.Notify(Notice{Level: LevelInfo, Message: "Restored snapshot " + key})
	return nil
}

// ExpandID maps a full id or a unique id prefix to the full task id.
func (s *Session) ExpandID(prefix string) (string, error) {
	s.defaults()
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", timeline.ErrTaskNotFound)
	}
	if _, err := s.doc.Find(prefix); err == nil {
		return prefix, nil
	}
	var matches []string
	for _, d := range s.doc.Days {
		d.Walk(func(t *timeline.Task) bool {
			if strings.HasPrefix(t.ID, prefix) {
				matches = append(matches, t.ID)
			}
			return true
		})
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", timeline.ErrTaskNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, prefix, len(matches))
	}
}
