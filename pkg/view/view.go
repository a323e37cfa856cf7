// Package view selects which days of a timeline a given view shows.
package view

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// Type identifies a way of looking at the timeline.
type Type string

const (
	// Timeline shows every day in file order.
	Timeline Type = "timeline"
	// Unsorted shows the days whose header is not a date.
	Unsorted Type = "unsorted"
	// Weekly shows the dated days within a window around today.
	Weekly Type = "weekly"
	// Calendar shows one summary row per day.
	Calendar Type = "calendar"
)

// AllTypes returns the supported views in cycling order.
func AllTypes() []Type {
	return []Type{
		Timeline,
		Unsorted,
		Weekly,
		Calendar,
	}
}

// ParseType converts a string to a Type or returns an error for unknown values.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return Timeline, nil
	}
	for _, candidate := range AllTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return Timeline, fmt.Errorf("view: unknown type %q", raw)
}

// Next returns the view after t in cycling order.
func (t Type) Next() Type {
	all := AllTypes()
	for i, candidate := range all {
		if candidate == t {
			return all[(i+1)%len(all)]
		}
	}
	return Timeline
}

// Options tune day selection.
type Options struct {
	Now time.Time
	// WindowDays is how far either side of today the weekly view reaches.
	WindowDays int
}

// Select returns the indices of the days t shows, in document order.
func Select(doc *timeline.Document, t Type, opts Options) []int {
	out := make([]int, 0, len(doc.Days))
	for i, d := range doc.Days {
		if includes(d, t, opts) {
			out = append(out, i)
		}
	}
	return out
}

func includes(d *timeline.Day, t Type, opts Options) bool {
	switch t {
	case Unsorted:
		return !d.Resolved
	case Weekly:
		if !d.Resolved {
			return false
		}
		date, err := timeutil.ParseKey(d.Key)
		if err != nil {
			return false
		}
		window := opts.WindowDays
		if window <= 0 {
			window = 7
		}
		today := timeutil.Day(opts.Now)
		// Keys carry no zone, so compare calendar days in UTC.
		from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -window)
		to := from.AddDate(0, 0, 2*window)
		return !date.Before(from) && !date.After(to)
	default:
		return true
	}
}

// Build returns a copy of doc holding only the days t selects. A non-empty
// query prunes each day to the matching tasks and their ancestors, and days
// left with no tasks are dropped.
func Build(doc *timeline.Document, t Type, opts Options, query string) *timeline.Document {
	query = strings.TrimSpace(query)
	keep := doc.Filter(query)
	out := &timeline.Document{Anomalies: doc.Anomalies}
	for _, i := range Select(doc, t, opts) {
		d := *doc.Days[i]
		d.Tasks = prune(d.Tasks, keep)
		if query != "" && len(d.Tasks) == 0 {
			continue
		}
		out.Days = append(out.Days, &d)
	}
	return out
}

func prune(tasks []*timeline.Task, keep map[string]bool) []*timeline.Task {
	out := make([]*timeline.Task, 0, len(tasks))
	for _, t := range tasks {
		if !keep[t.ID] {
			continue
		}
		c := *t
		c.Subtasks = prune(t.Subtasks, keep)
		out = append(out, &c)
	}
	return out
}
