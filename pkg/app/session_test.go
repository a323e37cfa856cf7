package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

type memoryStore struct {
	mu       sync.Mutex
	files    map[string]string
	writes   int
	failNext error
	events   chan store.Event
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string]string), events: make(chan store.Event, 4)}
}

func (m *memoryStore) Read(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: not found", path)
	}
	return text, nil
}

func (m *memoryStore) Write(path, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	m.writes++
	m.files[path] = text
	return nil
}

func (m *memoryStore) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *memoryStore) Watch(_ context.Context, _ string) (<-chan store.Event, error) {
	return m.events, nil
}

const fixture = `# Timeline

## 2024-03-14

- [ ] Old task
- [x] Done old

## Today

- [ ] Write report [due:: tomorrow]
  - [ ] Outline
- Note

## 2024-03-16

`

var fixedNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T, text string) (*Session, *memoryStore, *Recorder) {
	t.Helper()
	ms := newMemoryStore()
	if text != "" {
		ms.files["Timeline.md"] = text
	}
	rec := &Recorder{}
	n := 0
	s := &Session{
		Store:    ms,
		Clock:    timeutil.FixedClock{Time: fixedNow},
		Notifier: rec,
		NewID: func() string {
			n++
			return fmt.Sprintf("t%d", n)
		},
	}
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, ms, rec
}

func TestOpenCreatesDefaultTemplate(t *testing.T) {
	s, ms, rec := newTestSession(t, "")
	if ms.files["Timeline.md"] != store.DefaultTemplate {
		t.Fatalf("template not written: %q", ms.files["Timeline.md"])
	}
	doc := s.Document()
	if len(doc.Days) != 1 || !doc.Days[0].IsToday {
		t.Fatalf("expected a single today day, got %+v", doc.Days)
	}
	if got := len(rec.Drain()); got != 1 {
		t.Fatalf("expected one creation notice, got %d", got)
	}
}

func TestOpenFailureDisables(t *testing.T) {
	ms := newMemoryStore()
	ms.failNext = errors.New("read-only")
	rec := &Recorder{}
	s := &Session{Store: ms, Notifier: rec}

	err := s.Open(context.Background())
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "create" {
		t.Fatalf("expected create PersistenceError, got %v", err)
	}
	if !s.Disabled() || len(s.Document().Days) != 0 {
		t.Fatalf("session should be disabled and empty")
	}
	if err := s.Delete("x"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	notices := rec.Drain()
	if len(notices) != 1 || notices[0].Level != LevelError {
		t.Fatalf("unexpected notices %+v", notices)
	}

	// The file reappearing re-enables the session.
	ms.files["Timeline.md"] = fixture
	if err := s.HandleEvent(context.Background(), store.Event{Type: store.EventModified, Path: "Timeline.md"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if s.Disabled() || len(s.Document().Days) != 3 {
		t.Fatalf("session should be re-enabled")
	}
}

func TestMoveWritesOnce(t *testing.T) {
	s, ms, _ := newTestSession(t, fixture)

	// t3 is "Write report" with subtask t4.
	if err := s.Move("t3", 0, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if ms.writes != 1 {
		t.Fatalf("expected one write, got %d", ms.writes)
	}
	want := "# Timeline\n\n" +
		"## 2024-03-14\n\n" +
		"- [ ] Write report [due:: tomorrow]\n" +
		"  - [ ] Outline\n" +
		"- [ ] Old task\n" +
		"- [x] Done old\n\n" +
		"## Today\n\n" +
		"- Note\n\n" +
		"## 2024-03-16\n\n\n"
	if got := ms.files["Timeline.md"]; got != want {
		t.Fatalf("unexpected file:\n%s\nwant:\n%s", got, want)
	}
	moved, err := s.Document().Find("t4")
	if err != nil || moved.DayKey != "2024-03-14" || moved.Level != 1 {
		t.Fatalf("subtask not carried: %+v, %v", moved, err)
	}
}

func TestMoveToTodayAndTomorrow(t *testing.T) {
	s, _, _ := newTestSession(t, fixture)

	if err := s.MoveToToday("t1"); err != nil {
		t.Fatalf("move to today: %v", err)
	}
	doc := s.Document()
	today := doc.Days[doc.TodayIndex()]
	if last := today.Tasks[len(today.Tasks)-1]; last.ID != "t1" {
		t.Fatalf("t1 should be last on today, got %s", last.ID)
	}

	if err := s.MoveToTomorrow("t1"); err != nil {
		t.Fatalf("move to tomorrow: %v", err)
	}
	if task, _ := s.Document().Find("t1"); task.DayKey != "2024-03-16" {
		t.Fatalf("t1 on %s", task.DayKey)
	}
}

func TestMoveToTomorrowWithoutDay(t *testing.T) {
	s, ms, _ := newTestSession(t, strings.Replace(fixture, "## 2024-03-16\n", "", 1))
	if err := s.MoveToTomorrow("t1"); !errors.Is(err, timeline.ErrDayNotFound) {
		t.Fatalf("expected ErrDayNotFound, got %v", err)
	}
	if ms.writes != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestToggle(t *testing.T) {
	s, ms, _ := newTestSession(t, fixture)

	task, err := s.Toggle("t1")
	if err != nil || !task.Completed {
		t.Fatalf("toggle: %+v, %v", task, err)
	}
	if !strings.Contains(ms.files["Timeline.md"], "- [x] Old task\n") {
		t.Fatalf("toggle not written")
	}

	if _, err := s.Toggle("t5"); !errors.Is(err, timeline.ErrNotCheckbox) {
		t.Fatalf("expected ErrNotCheckbox, got %v", err)
	}
	if ms.writes != 1 {
		t.Fatalf("toggling a bullet must not write, writes=%d", ms.writes)
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	s, ms, _ := newTestSession(t, fixture)
	if err := s.Delete("t3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if strings.Contains(ms.files["Timeline.md"], "Outline") {
		t.Fatalf("subtask survived delete")
	}
	if err := s.Delete("t3"); !errors.Is(err, timeline.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	s, ms, _ := newTestSession(t, fixture)
	day, err := s.ResolveDay("today")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	task, err := s.Add(day, "Call Bob [at:: 3pm]", true)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Text != "Call Bob" {
		t.Fatalf("text = %q", task.Text)
	}
	if !strings.Contains(ms.files["Timeline.md"], "- Note\n- [ ] Call Bob [at:: 3pm]\n") {
		t.Fatalf("added task not written:\n%s", ms.files["Timeline.md"])
	}
}

func TestResolveDay(t *testing.T) {
	s, _, _ := newTestSession(t, fixture)
	tests := map[string]int{
		"1":          0,
		"2024-03-14": 0,
		"today":      1,
		"Today":      1,
		"tomorrow":   2,
		"03/16/2024": 2,
	}
	for ref, want := range tests {
		got, err := s.ResolveDay(ref)
		if err != nil || got != want {
			t.Errorf("%q: got %d, %v; want %d", ref, got, err, want)
		}
	}
	for _, ref := range []string{"0", "9", "someday"} {
		if _, err := s.ResolveDay(ref); !errors.Is(err, timeline.ErrDayNotFound) {
			t.Errorf("%q: expected ErrDayNotFound, got %v", ref, err)
		}
	}
}

func TestWriteFailureKeepsModel(t *testing.T) {
	s, ms, rec := newTestSession(t, fixture)
	rec.Drain()
	ms.failNext = errors.New("disk full")

	err := s.Delete("t1")
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if _, err := s.Document().Find("t1"); !errors.Is(err, timeline.ErrTaskNotFound) {
		t.Fatalf("model change should be kept in memory")
	}
	if !strings.Contains(ms.files["Timeline.md"], "Old task") {
		t.Fatalf("file should be untouched")
	}
	if notices := rec.Drain(); len(notices) != 1 || notices[0].Level != LevelError {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestReloadDiscardsUnsavedChange(t *testing.T) {
	tests := map[string]func(*Session) error{
		"event": func(s *Session) error {
			return s.HandleEvent(context.Background(), store.Event{Type: store.EventModified, Path: "Timeline.md"})
		},
		"reload": func(s *Session) error {
			return s.Reload(context.Background())
		},
	}
	for name, reload := range tests {
		t.Run(name, func(t *testing.T) {
			s, ms, _ := newTestSession(t, fixture)
			ms.failNext = errors.New("disk full")
			if err := s.Delete("t1"); err == nil {
				t.Fatalf("expected the write to fail")
			}
			if err := reload(s); err != nil {
				t.Fatalf("reload: %v", err)
			}
			// A reparse hands out fresh ids, so look the task up by text.
			days := s.Document().Days
			if len(days) == 0 || len(days[0].Tasks) != 2 || days[0].Tasks[0].Text != "Old task" {
				t.Fatalf("model should match the file after reload, got %+v", days)
			}
			if ms.writes != 0 {
				t.Fatalf("reload must not write, got %d", ms.writes)
			}
		})
	}
}

func TestExternalEditReplacesDocument(t *testing.T) {
	s, ms, _ := newTestSession(t, fixture)
	ms.files["Timeline.md"] = "# Timeline\n\n## Someday\n\n- [ ] Dream\n"

	if err := s.HandleEvent(context.Background(), store.Event{Type: store.EventModified, Path: "Timeline.md"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	doc := s.Document()
	if len(doc.Days) != 1 || doc.Days[0].Key != "Someday" || doc.Days[0].Resolved {
		t.Fatalf("unexpected document %+v", doc.Days)
	}
}

func TestOwnWriteKeepsIDs(t *testing.T) {
	s, _, _ := newTestSession(t, fixture)
	if _, err := s.Toggle("t1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.HandleEvent(context.Background(), store.Event{Type: store.EventModified, Path: "Timeline.md"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, err := s.Document().Find("t1"); err != nil {
		t.Fatalf("ids should survive the echo of our own write: %v", err)
	}
}

func TestRenameAndDelete(t *testing.T) {
	s, ms, rec := newTestSession(t, fixture)
	ms.files["Moved.md"] = ms.files["Timeline.md"]
	delete(ms.files, "Timeline.md")

	ctx := context.Background()
	if err := s.HandleEvent(ctx, store.Event{Type: store.EventRenamed, Path: "Timeline.md", NewPath: "Moved.md"}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if s.Path() != "Moved.md" || s.Disabled() {
		t.Fatalf("rename not followed: %s", s.Path())
	}

	// Events for other files are ignored.
	if err := s.HandleEvent(ctx, store.Event{Type: store.EventDeleted, Path: "Other.md"}); err != nil || s.Disabled() {
		t.Fatalf("foreign event handled")
	}

	rec.Drain()
	if err := s.HandleEvent(ctx, store.Event{Type: store.EventDeleted, Path: "Moved.md"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !s.Disabled() || len(s.Document().Days) != 0 {
		t.Fatalf("delete should disable the session")
	}
	if notices := rec.Drain(); len(notices) != 1 || notices[0].Level != LevelWarn {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestSnapshotsAndRestore(t *testing.T) {
	snaps, err := store.OpenSnapshots(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	s, ms, _ := newTestSession(t, fixture)
	s.Snapshots = snaps

	if err := s.Delete("t3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	key, ok := snaps.Latest(context.Background())
	if !ok {
		t.Fatalf("no snapshot taken")
	}
	if err := s.Restore(context.Background(), key); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if ms.files["Timeline.md"] != fixture {
		t.Fatalf("restore did not bring back the original text")
	}
	if _, err := s.Document().Find("t3"); err == nil {
		// A restore re-parses, so ids are fresh.
		t.Fatalf("expected new ids after restore")
	}
	if len(snaps.List(context.Background())) != 2 {
		t.Fatalf("restore should snapshot the replaced text")
	}
}

func TestReportAndOverdue(t *testing.T) {
	s, _, _ := newTestSession(t, fixture)

	r := s.Report(fixedNow.AddDate(0, 0, -1), fixedNow)
	if r.Total != 4 || r.Done != 1 || len(r.Sections) != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Sections[1].Open[1].Depth != 1 {
		t.Fatalf("subtask depth not recorded")
	}

	overdue := s.OverdueTasks()
	if len(overdue) != 1 || overdue[0].Task.ID != "t1" || overdue[0].Age != 1 {
		t.Fatalf("unexpected overdue %+v", overdue)
	}
}

func TestExpandID(t *testing.T) {
	s, _, _ := newTestSession(t, fixture)
	if id, err := s.ExpandID("t3"); err != nil || id != "t3" {
		t.Fatalf("exact: %q, %v", id, err)
	}
	if _, err := s.ExpandID("t"); !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	if _, err := s.ExpandID("zz"); !errors.Is(err, timeline.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSequentialIDsFollowDocumentOrder(t *testing.T) {
	ms := newMemoryStore()
	ms.files["Timeline.md"] = fixture
	open := func() *Session {
		s := &Session{Store: ms, Clock: timeutil.FixedClock{Time: fixedNow}, NewID: SequentialIDs()}
		if err := s.Open(context.Background()); err != nil {
			t.Fatalf("open: %v", err)
		}
		return s
	}

	first := open()
	task, err := first.Document().Find("3")
	if err != nil || task.Text != "Write report" {
		t.Fatalf("id 3 should be the third task, got %+v, %v", task, err)
	}
	if _, err := open().Toggle("3"); err != nil {
		t.Fatalf("a second session should agree on ids: %v", err)
	}
	if !strings.Contains(ms.files["Timeline.md"], "- [x] Write report") {
		t.Fatalf("wrong task toggled:\n%s", ms.files["Timeline.md"])
	}
}
