package app

import (
	"math"
	"sort"
	"time"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// ReportItem is a checkbox task inside the report window.
type ReportItem struct {
	Task  *timeline.Task
	Depth int
}

// ReportSection groups the report items of one day.
type ReportSection struct {
	Day       *timeline.Day
	Date      time.Time
	Completed []ReportItem
	Open      []ReportItem
}

// ReportResult summarises checkbox progress for the days between Since and
// Until, inclusive.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Done     int
	Total    int
}

// Report collects checkbox tasks of resolved days between since and until.
// Days whose header did not resolve to a date are never included.
func (s *Session) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	since, until = timeutil.Day(since), timeutil.Day(until)
	doc := s.Document()

	result := ReportResult{Since: since, Until: until}
	for _, d := range doc.Days {
		if !d.Resolved {
			continue
		}
		date, err := timeutil.ParseKey(d.Key)
		if err != nil {
			continue
		}
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, since.Location())
		if date.Before(since) || date.After(until) {
			continue
		}
		section := ReportSection{Day: d, Date: date}
		var visit func(t *timeline.Task, depth int)
		visit = func(t *timeline.Task, depth int) {
			if t.Checkbox {
				item := ReportItem{Task: t, Depth: depth}
				if t.Completed {
					section.Completed = append(section.Completed, item)
					result.Done++
				} else {
					section.Open = append(section.Open, item)
				}
				result.Total++
			}
			for _, sub := range t.Subtasks {
				visit(sub, depth+1)
			}
		}
		for _, t := range d.Tasks {
			visit(t, 0)
		}
		if len(section.Completed)+len(section.Open) > 0 {
			result.Sections = append(result.Sections, section)
		}
	}
	return result
}

// Overdue is an open top-level checkbox task left on a day before today.
type Overdue struct {
	Task *timeline.Task
	Day  *timeline.Day
	Age  int
}

// OverdueTasks lists open top-level checkbox tasks on resolved days before
// today, oldest first. They are the candidates for MoveToToday.
func (s *Session) OverdueTasks() []Overdue {
	doc := s.Document()
	today := timeutil.Day(s.Now())
	var out []Overdue
	for _, d := range doc.Days {
		if !d.Resolved {
			continue
		}
		date, err := timeutil.ParseKey(d.Key)
		if err != nil {
			continue
		}
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
		if !date.Before(today) {
			continue
		}
		age := int(math.Round(today.Sub(date).Hours() / 24))
		for _, t := range d.Tasks {
			if t.Checkbox && !t.Completed {
				out = append(out, Overdue{Task: t, Day: d, Age: age})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Age > out[j].Age })
	return out
}
