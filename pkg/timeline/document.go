package timeline

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/timeline/pkg/timeutil"
)

var (
	// ErrTaskNotFound is returned when no task carries the requested id.
	ErrTaskNotFound = errors.New("timeline: task not found")
	// ErrDayNotFound is returned when a day index or key does not exist.
	ErrDayNotFound = errors.New("timeline: day not found")
	// ErrNotCheckbox is returned when toggling a plain bullet.
	ErrNotCheckbox = errors.New("timeline: task has no checkbox")
)

// Day is the group of tasks under one header line.
type Day struct {
	// Key is the canonical YYYY-MM-DD date, or the header text when the
	// header did not resolve.
	Key string `json:"key" yaml:"key"`
	// Display is the header text as written.
	Display  string  `json:"display" yaml:"display"`
	Resolved bool    `json:"resolved" yaml:"resolved"`
	Tasks    []*Task `json:"tasks" yaml:"tasks"`
	// IsToday is recomputed on every load and never persisted.
	IsToday bool `json:"isToday,omitempty" yaml:"isToday,omitempty"`
}

// Walk visits every task of the day depth-first.
func (d *Day) Walk(fn func(*Task) bool) {
	for _, t := range d.Tasks {
		if !t.Walk(fn) {
			return
		}
	}
}

// Counts returns completed and total checkbox tasks, at every depth.
func (d *Day) Counts() (done, total int) {
	d.Walk(func(t *Task) bool {
		if t.Checkbox {
			total++
			if t.Completed {
				done++
			}
		}
		return true
	})
	return done, total
}

// Anomaly records a line inside a day that was neither a task nor blank.
type Anomaly struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
}

// Document is an ordered list of days. Two days may share a key.
type Document struct {
	Days      []*Day    `json:"days" yaml:"days"`
	Anomalies []Anomaly `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
}

// Locate finds the task with id and the index of the day that owns it.
func (doc *Document) Locate(id string) (*Task, int, error) {
	for i, d := range doc.Days {
		var found *Task
		d.Walk(func(t *Task) bool {
			if t.ID == id {
				found = t
				return false
			}
			return true
		})
		if found != nil {
			return found, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// Find returns the task with id.
func (doc *Document) Find(id string) (*Task, error) {
	t, _, err := doc.Locate(id)
	return t, err
}

// Day returns the day at index i.
func (doc *Document) Day(i int) (*Day, error) {
	if i < 0 || i >= len(doc.Days) {
		return nil, fmt.Errorf("%w: index %d", ErrDayNotFound, i)
	}
	return doc.Days[i], nil
}

// IndexOf returns the first day whose key equals key.
func (doc *Document) IndexOf(key string) int {
	for i, d := range doc.Days {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// TodayIndex returns the first day flagged as today, or -1.
func (doc *Document) TodayIndex() int {
	for i, d := range doc.Days {
		if d.IsToday {
			return i
		}
	}
	return -1
}

// MarkToday recomputes IsToday for every day against now.
func (doc *Document) MarkToday(now time.Time) {
	for _, d := range doc.Days {
		d.IsToday = timeutil.IsToday(d.Key, now)
	}
}

// Move detaches the task from whichever day owns it, at any depth, and
// inserts it into the top-level list of day at pos. pos is clamped to the
// list bounds. Subtasks travel with the task.
func (doc *Document) Move(id string, day, pos int) error {
	dest, err := doc.Day(day)
	if err != nil {
		return err
	}
	t, err := doc.Remove(id)
	if err != nil {
		return err
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(dest.Tasks) {
		pos = len(dest.Tasks)
	}
	t.relevel(0, dest.Key)
	dest.Tasks = append(dest.Tasks, nil)
	copy(dest.Tasks[pos+1:], dest.Tasks[pos:])
	dest.Tasks[pos] = t
	return nil
}

// MoveToEnd moves the task to the end of day's top-level list.
func (doc *Document) MoveToEnd(id string, day int) error {
	d, err := doc.Day(day)
	if err != nil {
		return err
	}
	return doc.Move(id, day, len(d.Tasks))
}

// MoveToKey appends the task to the first day whose key is key.
func (doc *Document) MoveToKey(id, key string) error {
	i := doc.IndexOf(key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrDayNotFound, key)
	}
	return doc.MoveToEnd(id, i)
}

// Toggle flips the completion flag of a checkbox task.
func (doc *Document) Toggle(id string) (*Task, error) {
	t, err := doc.Find(id)
	if err != nil {
		return nil, err
	}
	if !t.Toggle() {
		return t, fmt.Errorf("%w: %s", ErrNotCheckbox, id)
	}
	return t, nil
}

// Remove detaches the task and its subtree from the document and returns
// it. Descendants are never promoted.
func (doc *Document) Remove(id string) (*Task, error) {
	for _, d := range doc.Days {
		var found *Task
		if d.Tasks, found = detach(d.Tasks, id); found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// Delete removes the task and all its descendants.
func (doc *Document) Delete(id string) error {
	_, err := doc.Remove(id)
	return err
}

// Add appends a new top-level task to day, parsing metadata out of raw.
func (doc *Document) Add(day int, id, raw string, checkbox bool) (*Task, error) {
	d, err := doc.Day(day)
	if err != nil {
		return nil, err
	}
	t := NewTask(id, raw, checkbox)
	t.relevel(0, d.Key)
	d.Tasks = append(d.Tasks, t)
	return t, nil
}

// Filter returns the ids of tasks whose text matches query, plus the ids of
// their ancestors so a match keeps its context. An empty query matches
// everything.
func (doc *Document) Filter(query string) map[string]bool {
	keep := make(map[string]bool)
	var visit func(t *Task) bool
	visit = func(t *Task) bool {
		hit := query == "" || t.Matches(query)
		for _, sub := range t.Subtasks {
			if visit(sub) {
				hit = true
			}
		}
		if hit {
			keep[t.ID] = true
		}
		return hit
	}
	for _, d := range doc.Days {
		for _, t := range d.Tasks {
			visit(t)
		}
	}
	return keep
}

// Clone deep-copies the document so callers can render it without sharing
// the live tree.
func (doc *Document) Clone() *Document {
	out := &Document{Days: make([]*Day, len(doc.Days))}
	if doc.Anomalies != nil {
		out.Anomalies = append([]Anomaly(nil), doc.Anomalies...)
	}
	for i, d := range doc.Days {
		c := *d
		c.Tasks = make([]*Task, len(d.Tasks))
		for j, t := range d.Tasks {
			c.Tasks[j] = t.Clone()
		}
		out.Days[i] = &c
	}
	return out
}

// Tasks counts every task in the document.
func (doc *Document) Tasks() int {
	n := 0
	for _, d := range doc.Days {
		for _, t := range d.Tasks {
			n += t.Count()
		}
	}
	return n
}
