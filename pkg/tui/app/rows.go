package teaui

import (
	"strings"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/view"
)

// row is one line of the timeline list: a day header when task is nil,
// otherwise a task at depth under that day.
type row struct {
	day   int
	task  *timeline.Task
	depth int
	// top is the task's index among its day's top-level tasks, or -1 for
	// nested tasks and headers.
	top int
}

func (r row) header() bool { return r.task == nil }

// buildRows flattens doc into display rows for the given view and query.
// In the calendar view only headers are listed. With a query, tasks that do
// not match and have no matching descendant are hidden, as are days left
// empty.
func buildRows(doc *timeline.Document, v view.Type, opts view.Options, query string) []row {
	query = strings.TrimSpace(query)
	keep := doc.Filter(query)

	var rows []row
	for _, i := range view.Select(doc, v, opts) {
		d := doc.Days[i]
		if v == view.Calendar {
			rows = append(rows, row{day: i, top: -1})
			continue
		}
		var tasks []row
		for pos, t := range d.Tasks {
			tasks = appendTask(tasks, i, t, 0, pos, keep)
		}
		if query != "" && len(tasks) == 0 {
			continue
		}
		rows = append(rows, row{day: i, top: -1})
		rows = append(rows, tasks...)
	}
	return rows
}

func appendTask(rows []row, day int, t *timeline.Task, depth, top int, keep map[string]bool) []row {
	if !keep[t.ID] {
		return rows
	}
	rows = append(rows, row{day: day, task: t, depth: depth, top: top})
	for _, sub := range t.Subtasks {
		rows = appendTask(rows, day, sub, depth+1, -1, keep)
	}
	return rows
}

// indexOfTask returns the row holding id, or -1.
func indexOfTask(rows []row, id string) int {
	for i, r := range rows {
		if r.task != nil && r.task.ID == id {
			return i
		}
	}
	return -1
}

// indexOfDay returns the header row of day, or -1.
func indexOfDay(rows []row, day int) int {
	for i, r := range rows {
		if r.header() && r.day == day {
			return i
		}
	}
	return -1
}

// dropTarget works out where a grabbed task lands when dropped on the row at
// cursor: right after that row's top-level task, or first in the day when
// the cursor is on the header. Positions come from the document rather than
// the rows, since a search can hide tasks. The result counts the day's
// top-level tasks without the grabbed one, which is how Move expects it.
func dropTarget(doc *timeline.Document, rows []row, cursor int, grabbed string) (day, pos int, ok bool) {
	if cursor < 0 || cursor >= len(rows) {
		return 0, 0, false
	}
	day = rows[cursor].day
	for i := cursor; i >= 0 && rows[i].day == day; i-- {
		if rows[i].header() {
			return day, 0, true
		}
		if rows[i].depth == 0 {
			pos = rows[i].top + 1
			break
		}
	}
	if day < len(doc.Days) {
		for i, t := range doc.Days[day].Tasks {
			if t.ID == grabbed && i < pos {
				pos--
				break
			}
		}
	}
	return day, pos, true
}

// inSubtree reports whether the row at i sits under the task id.
func inSubtree(rows []row, i int, id string) bool {
	if i < 0 || i >= len(rows) || rows[i].task == nil {
		return false
	}
	start := indexOfTask(rows, id)
	if start < 0 || i < start {
		return false
	}
	if i == start {
		return true
	}
	base := rows[start].depth
	for j := start + 1; j <= i; j++ {
		if rows[j].header() || rows[j].depth <= base {
			return false
		}
	}
	return true
}
