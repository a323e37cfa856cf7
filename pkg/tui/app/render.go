package teaui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timeline/pkg/glyph"
	"tableflip.dev/timeline/pkg/metadata"
	"tableflip.dev/timeline/pkg/timeutil"
	"tableflip.dev/timeline/pkg/tui/calendar"
	"tableflip.dev/timeline/pkg/view"
)

const (
	headerLines = 2
	footerLines = 2
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.mode == modeHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	parts := []string{m.renderHeader()}
	if panel := m.calendarPanel(); panel != "" {
		parts = append(parts, panel, "")
	}
	parts = append(parts, m.renderRows()...)
	for i := len(parts); i < m.height-footerLines; i++ {
		parts = append(parts, "")
	}
	parts = append(parts, m.renderFooter(), m.renderPrompt())
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("Timeline")
	summary := fmt.Sprintf("view: %s", m.view)
	if m.query != "" {
		summary += fmt.Sprintf(" • search: %q", m.query)
	}
	if m.session.Disabled() {
		summary += " • file unavailable"
	}
	line := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		m.theme.Footer.Help.Render("  "+summary),
	)
	return line + "\n" + m.theme.Footer.Help.Render(truncate.String(m.session.Path(), uint(m.width)))
}

func (m *Model) pageSize() int {
	n := m.height - headerLines - footerLines
	if panel := m.calendarPanel(); panel != "" {
		n -= lipgloss.Height(panel) + 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	size := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+size {
		m.offset = m.cursor - size + 1
	}
	if max := len(m.rows) - size; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// calendarPanel is the month grid shown above the calendar view, following
// the selected day.
func (m *Model) calendarPanel() string {
	if m.view != view.Calendar || m.doc == nil {
		return ""
	}
	now := m.session.Now()
	month, selected := now, ""
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		d := m.doc.Days[m.rows[m.cursor].day]
		if date, err := timeutil.ParseKey(d.Key); d.Resolved && err == nil {
			month, selected = date, d.Key
		}
	}
	return calendar.Render(month, calendar.Cells(m.doc, month, selected, now), m.theme.Calendar)
}

func (m *Model) renderRows() []string {
	if len(m.rows) == 0 {
		msg := "No days in this view. Press v to change view."
		switch {
		case m.session.Disabled():
			msg = "The timeline file is unavailable. Waiting for it to reappear."
		case m.query != "":
			msg = "Nothing matches the search. Press esc to clear it."
		}
		return []string{m.theme.Footer.Help.Render(msg)}
	}
	end := m.offset + m.pageSize()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return lines
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	selected := i == m.cursor
	cursor := "  "
	if selected {
		cursor = "▸ "
		if m.mode == modeGrab {
			cursor = "⇢ "
		}
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}

	if r.header() {
		return cursor + m.renderDay(r.day, width, selected)
	}

	t := r.task
	mark := glyph.ForTask(t)
	style := m.theme.Task.Open
	switch mark {
	case glyph.Done:
		style = m.theme.Task.Done
	case glyph.Bullet:
		style = m.theme.Task.Bullet
	}
	if selected {
		style = style.Inherit(m.theme.Task.Selected)
	}
	if t.ID == m.grabbed {
		style = m.theme.Task.Grabbed
	}

	indent := strings.Repeat("  ", r.depth+1)
	text := truncate.StringWithTail(t.Text, uint(max(width-len(indent)-2, 1)), "…")
	line := indent + mark.String() + " " + style.Render(text)
	if len(t.Metadata) > 0 {
		meta := metadata.Encode("", t.Metadata)
		room := width - lipgloss.Width(line) - 1
		if room > 4 {
			line += " " + m.theme.Task.Meta.Render(truncate.StringWithTail(meta, uint(room), "…"))
		}
	}
	return cursor + line
}

func (m *Model) renderDay(i, width int, selected bool) string {
	d := m.doc.Days[i]
	style := m.theme.Day.Title
	switch {
	case d.IsToday:
		style = m.theme.Day.Today
	case !d.Resolved:
		style = m.theme.Day.Unresolved
	default:
		if date, err := timeutil.ParseKey(d.Key); err == nil {
			now := m.session.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			style = style.Foreground(m.theme.Day.DayColor(int(date.Sub(today).Hours() / 24)))
		}
	}
	if selected {
		style = style.Reverse(true)
	}

	label := strings.TrimSpace(d.Display)
	if mk, ok := glyph.ForDay(d); ok {
		label = mk.String() + " " + label
	}
	done, total := d.Counts()
	count := fmt.Sprintf(" %d/%d", done, total)
	if total == 0 {
		count = fmt.Sprintf(" %d", len(d.Tasks))
	}
	label = truncate.StringWithTail(label, uint(max(width-len(count), 1)), "…")
	return style.Render(label) + m.theme.Day.Count.Render(count)
}

func (m *Model) renderFooter() string {
	left := m.status
	style := m.theme.Footer.Status
	if m.statusErr {
		style = m.theme.Footer.Error
	}
	right := "? help"
	if m.jumpToToday && m.todayHidden() {
		right = m.theme.Footer.Hint.Render("g: jump to today") + "  " + right
	}
	rightW := lipgloss.Width(right)
	room := m.width - rightW - 1
	if room < 8 {
		room = 8
	}
	left = truncate.StringWithTail(left, uint(room), "…")
	pad := m.width - lipgloss.Width(left) - rightW
	if pad < 1 {
		pad = 1
	}
	return style.Render(left) + strings.Repeat(" ", pad) + m.theme.Footer.Help.Render(right)
}

// todayHidden is true when today's header exists but is scrolled out of
// view.
func (m *Model) todayHidden() bool {
	i := m.todayRow()
	if i < 0 {
		return false
	}
	return i < m.offset || i >= m.offset+m.pageSize()
}

func (m *Model) renderPrompt() string {
	switch m.mode {
	case modeSearch:
		return m.theme.Footer.Prompt.Render("Search: ") + m.input.View()
	case modeAdd:
		return m.theme.Footer.Prompt.Render("Add to "+m.currentDayLabel()+": ") + m.input.View()
	case modeConfirmDelete:
		t, err := m.doc.Find(m.confirmID)
		if err != nil {
			return ""
		}
		msg := fmt.Sprintf("Delete %q", t.Text)
		if n := t.Count() - 1; n > 0 {
			msg += fmt.Sprintf(" and %d nested", n)
		}
		return m.theme.Footer.Prompt.Render(msg + "? [y/N]")
	case modeGrab:
		return m.theme.Footer.Prompt.Render("Moving: j/k choose a spot, enter drops below the cursor, esc cancels")
	}
	return ""
}

var helpKeys = [][2]string{
	{"j/k, ↓/↑", "move the cursor"},
	{"[ / ]", "previous / next day"},
	{"space, x", "toggle a checkbox"},
	{"a", "add a task to the current day"},
	{"d", "delete the task and its subtasks"},
	{"t / T", "move to today / tomorrow"},
	{"m", "pick up a task, then enter to drop it"},
	{"J / K", "reorder a top-level task"},
	{"/", "search, esc clears"},
	{"g", "jump to today"},
	{"v", "cycle views"},
	{"r", "reload from disk"},
	{"q", "quit"},
}

func (m *Model) renderHelp() string {
	key := lipgloss.NewStyle().Bold(true).Width(12)
	lines := []string{m.theme.Modal.Title.Render("Keys"), ""}
	for _, k := range helpKeys {
		lines = append(lines, key.Render(k[0])+m.theme.Modal.Body.Render(k[1]))
	}
	legend := make([]string, 0, len(glyph.DefaultGlyphs()))
	for _, g := range glyph.DefaultGlyphs() {
		legend = append(legend, g.Symbol+" "+g.Meaning)
	}
	lines = append(lines, "", m.theme.Footer.Help.Render(strings.Join(legend, "  ")))
	return m.theme.Modal.Frame.Render(strings.Join(lines, "\n"))
}
