// Package teaui hosts the Bubble Tea program for the timeline TUI.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/timeline/pkg/app"
	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/tui/events"
	"tableflip.dev/timeline/pkg/tui/theme"
	"tableflip.dev/timeline/pkg/view"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeAdd
	modeConfirmDelete
	modeGrab
	modeHelp
)

// Options configure a Model.
type Options struct {
	View        view.Type
	WindowDays  int
	JumpToToday bool
	// Events feeds file changes into the UI; nil disables live reload.
	Events <-chan store.Event
	Logger *slog.Logger
}

// Model is the timeline UI. It renders snapshots of the session document
// and sends every user action back through the session.
type Model struct {
	ctx     context.Context
	session *app.Session
	notices *app.Recorder
	theme   theme.Theme
	logger  *slog.Logger

	view        view.Type
	window      int
	jumpToToday bool
	events      <-chan store.Event

	doc    *timeline.Document
	rows   []row
	cursor int
	offset int

	mode      mode
	input     textinput.Model
	query     string
	grabbed   string
	confirmID string

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the UI model around s. Notices raised by the session are
// redirected to the status line.
func New(ctx context.Context, s *app.Session, opts Options) *Model {
	rec := &app.Recorder{}
	s.Notifier = rec

	ti := textinput.New()
	ti.CharLimit = 200

	logger := opts.Logger
	if logger == nil {
		logger = s.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		ctx:         ctx,
		session:     s,
		notices:     rec,
		theme:       theme.Default(),
		logger:      logger,
		view:        opts.View,
		window:      opts.WindowDays,
		jumpToToday: opts.JumpToToday,
		events:      opts.Events,
		input:       ti,
		status:      "Ready",
	}
	if m.view == "" {
		m.view = view.Timeline
	}
	m.refresh()
	m.jumpTo(m.todayRow())
	return m
}

func (m *Model) Init() tea.Cmd {
	return events.WaitForChange(m.events)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	case events.FileChangedMsg:
		m.logger.Debug("file changed", "event", msg.Describe())
		if err := m.session.HandleEvent(m.ctx, msg.Event); err != nil {
			m.setStatus(err.Error(), true)
		}
		m.refresh()
		m.drainNotices()
		return m, events.WaitForChange(m.events)
	case events.WatchClosedMsg:
		m.events = nil
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch, modeAdd:
			return m, m.updateInput(msg)
		case modeConfirmDelete:
			m.updateConfirm(msg)
		case modeGrab:
			m.updateGrab(msg)
		case modeHelp:
			m.mode = modeNormal
		default:
			if quit := m.updateNormal(msg); quit {
				return m, tea.Quit
			}
		}
		m.scroll()
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		m.moveCursor(m.pageSize())
	case "pgup", "ctrl+u":
		m.moveCursor(-m.pageSize())
	case "home":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.rows) - 1
	case "]":
		m.jumpDay(1)
	case "[":
		m.jumpDay(-1)
	case " ", "x":
		m.toggle()
	case "d":
		m.startDelete()
	case "t":
		m.moveToDay(false)
	case "T":
		m.moveToDay(true)
	case "m":
		m.startGrab()
	case "J":
		m.shift(1)
	case "K":
		m.shift(-1)
	case "a":
		m.startInput(modeAdd, "New task on "+m.currentDayLabel())
	case "/":
		m.startInput(modeSearch, "search...")
		m.input.SetValue(m.query)
	case "esc":
		if m.query != "" {
			m.query = ""
			m.refresh()
			m.setStatus("Search cleared", false)
		}
	case "g":
		if i := m.todayRow(); i >= 0 {
			m.jumpTo(i)
		} else {
			m.setStatus("Today is not in this view", true)
		}
	case "v":
		m.view = m.view.Next()
		m.refresh()
		m.setStatus("View: "+string(m.view), false)
	case "r":
		if err := m.session.Reload(m.ctx); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("Reloaded", false)
		}
		m.refresh()
		m.drainNotices()
	case "?":
		m.mode = modeHelp
	}
	return false
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.mode == modeSearch {
			m.query = ""
			m.refresh()
		}
		m.endInput()
		return nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.mode == modeAdd && value != "" {
			m.add(value)
		}
		if m.mode == modeSearch && value != "" {
			m.setStatus(fmt.Sprintf("%d rows match %q", m.taskRows(), value), false)
		}
		m.endInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		// Incremental.
		m.query = m.input.Value()
		m.refresh()
	}
	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	id := m.confirmID
	m.mode = modeNormal
	m.confirmID = ""
	switch msg.String() {
	case "y", "Y":
		m.act("Deleted", m.session.Delete(id))
	default:
		m.setStatus("Delete cancelled", false)
	}
}

func (m *Model) updateGrab(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "]":
		m.jumpDay(1)
	case "[":
		m.jumpDay(-1)
	case "esc", "m":
		m.cursor = max(indexOfTask(m.rows, m.grabbed), 0)
		m.grabbed = ""
		m.mode = modeNormal
		m.setStatus("Move cancelled", false)
	case "enter", " ":
		id := m.grabbed
		m.grabbed = ""
		m.mode = modeNormal
		if inSubtree(m.rows, m.cursor, id) {
			m.cursor = max(indexOfTask(m.rows, id), 0)
			m.setStatus("Cannot drop a task onto itself", true)
			return
		}
		day, pos, ok := dropTarget(m.doc, m.rows, m.cursor, id)
		if !ok {
			return
		}
		m.act("Moved", m.session.Move(id, day, pos))
		if i := indexOfTask(m.rows, id); i >= 0 {
			m.cursor = i
		}
	}
}

func (m *Model) startInput(md mode, placeholder string) {
	m.mode = md
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) selectedTask() (*timeline.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].task == nil {
		return nil, false
	}
	return m.rows[m.cursor].task, true
}

func (m *Model) toggle() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	_, err := m.session.Toggle(t.ID)
	if errors.Is(err, timeline.ErrNotCheckbox) {
		m.setStatus("Bullets have no checkbox", false)
		return
	}
	m.act("Toggled", err)
}

func (m *Model) startDelete() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	m.mode = modeConfirmDelete
	m.confirmID = t.ID
}

func (m *Model) moveToDay(tomorrow bool) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	var err error
	label := "today"
	if tomorrow {
		label = "tomorrow"
		err = m.session.MoveToTomorrow(t.ID)
	} else {
		err = m.session.MoveToToday(t.ID)
	}
	if errors.Is(err, timeline.ErrDayNotFound) {
		m.setStatus("There is no day for "+label+" in the file", true)
		return
	}
	m.act("Moved to "+label, err)
}

func (m *Model) startGrab() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	m.mode = modeGrab
	m.grabbed = t.ID
	m.setStatus("Moving "+t.Text+": j/k to choose, enter to drop, esc to cancel", false)
}

// shift swaps a top-level task with its neighbour in the same day.
func (m *Model) shift(delta int) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	r := m.rows[m.cursor]
	if r.top < 0 {
		m.setStatus("Only top-level tasks can be reordered", true)
		return
	}
	pos := r.top + delta
	if pos < 0 || pos >= len(m.doc.Days[r.day].Tasks) {
		return
	}
	m.act("Moved", m.session.Move(t.ID, r.day, pos))
	if i := indexOfTask(m.rows, t.ID); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) add(text string) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		m.setStatus("No day to add to", true)
		return
	}
	t, err := m.session.Add(m.rows[m.cursor].day, text, true)
	m.act("Added", err)
	if err == nil {
		if i := indexOfTask(m.rows, t.ID); i >= 0 {
			m.cursor = i
		}
	}
}

// act reports the outcome of a session mutation and re-renders.
func (m *Model) act(done string, err error) {
	switch {
	case errors.Is(err, app.ErrDisabled):
		m.setStatus("Timeline file is unavailable", true)
	case err != nil:
		m.setStatus(err.Error(), true)
	default:
		m.setStatus(done, false)
	}
	m.refresh()
	m.drainNotices()
}

// refresh takes a new snapshot of the document and keeps the cursor on the
// same task when it is still visible.
func (m *Model) refresh() {
	var keepID string
	keepDay := -1
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		if t := m.rows[m.cursor].task; t != nil {
			keepID = t.ID
		}
		keepDay = m.rows[m.cursor].day
	}

	m.doc = m.session.Document()
	m.rows = buildRows(m.doc, m.view, view.Options{Now: m.session.Now(), WindowDays: m.window}, m.query)

	switch {
	case keepID != "" && indexOfTask(m.rows, keepID) >= 0:
		m.cursor = indexOfTask(m.rows, keepID)
	case keepDay >= 0 && indexOfDay(m.rows, keepDay) >= 0 && keepID == "":
		m.cursor = indexOfDay(m.rows, keepDay)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) drainNotices() {
	for _, n := range m.notices.Drain() {
		m.setStatus(n.Message, n.Level == app.LevelError || n.Level == app.LevelWarn)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

// jumpDay moves the cursor to the next or previous day header.
func (m *Model) jumpDay(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].header() {
			m.cursor = i
			return
		}
	}
}

// jumpTo puts row i at the top of the list.
func (m *Model) jumpTo(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.cursor = i
	m.offset = i
	m.scroll()
}

func (m *Model) todayRow() int {
	if m.doc == nil {
		return -1
	}
	for i, r := range m.rows {
		if r.header() && m.doc.Days[r.day].IsToday {
			return i
		}
	}
	return -1
}

func (m *Model) currentDayLabel() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return "?"
	}
	return strings.TrimSpace(m.doc.Days[m.rows[m.cursor].day].Display)
}

func (m *Model) taskRows() int {
	n := 0
	for _, r := range m.rows {
		if !r.header() {
			n++
		}
	}
	return n
}

// Run starts the UI on the terminal and blocks until it quits.
func Run(ctx context.Context, s *app.Session, opts Options) error {
	if opts.Events == nil {
		ch, err := s.Watch(ctx)
		if err != nil {
			s.Logger.Warn("live reload unavailable", "err", err)
		} else {
			opts.Events = ch
		}
	}
	p := tea.NewProgram(New(ctx, s, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
