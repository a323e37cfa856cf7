// Package timeline holds the in-memory model of a day-partitioned task
// outline: a Document owns Days, a Day owns its top-level Tasks and every
// Task owns its subtasks.
package timeline

import (
	"strings"

	"tableflip.dev/timeline/pkg/metadata"
)

// Task is one bullet or checkbox line together with its nested subtasks.
type Task struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	// Checkbox is false for plain bullets, which have no completion state.
	Checkbox  bool            `json:"checkbox" yaml:"checkbox"`
	Completed bool            `json:"completed,omitempty" yaml:"completed,omitempty"`
	DayKey    string          `json:"day" yaml:"day"`
	Metadata  metadata.Fields `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Subtasks  []*Task         `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Level     int             `json:"level" yaml:"level"`
}

// NewTask builds a task from raw line text, pulling metadata tags out of it.
func NewTask(id, raw string, checkbox bool) *Task {
	fields, text := metadata.Extract(raw)
	return &Task{
		ID:       id,
		Text:     text,
		Checkbox: checkbox,
		Metadata: fields,
	}
}

// Toggle flips completion. It reports false for bullets, which are left
// untouched.
func (t *Task) Toggle() bool {
	if !t.Checkbox {
		return false
	}
	t.Completed = !t.Completed
	return true
}

// Walk visits t and its descendants depth-first, stopping when fn returns
// false.
func (t *Task) Walk(fn func(*Task) bool) bool {
	if !fn(t) {
		return false
	}
	for _, sub := range t.Subtasks {
		if !sub.Walk(fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the subtree rooted at t.
func (t *Task) Count() int {
	n := 0
	t.Walk(func(*Task) bool {
		n++
		return true
	})
	return n
}

// Matches reports whether the cleaned text contains query, ignoring case.
func (t *Task) Matches(query string) bool {
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(query))
}

// Clone deep-copies the subtree.
func (t *Task) Clone() *Task {
	c := *t
	c.Metadata = t.Metadata.Clone()
	if t.Subtasks != nil {
		c.Subtasks = make([]*Task, len(t.Subtasks))
		for i, sub := range t.Subtasks {
			c.Subtasks[i] = sub.Clone()
		}
	}
	return &c
}

// relevel sets t's level and renumbers its descendants beneath it.
func (t *Task) relevel(level int, dayKey string) {
	t.Level = level
	t.DayKey = dayKey
	for _, sub := range t.Subtasks {
		sub.relevel(level+1, dayKey)
	}
}

// detach removes the task with id from list or any nested subtask list.
func detach(list []*Task, id string) ([]*Task, *Task) {
	for i, t := range list {
		if t.ID == id {
			out := append(list[:i:i], list[i+1:]...)
			return out, t
		}
	}
	for _, t := range list {
		var found *Task
		if t.Subtasks, found = detach(t.Subtasks, id); found != nil {
			return list, found
		}
	}
	return list, nil
}
