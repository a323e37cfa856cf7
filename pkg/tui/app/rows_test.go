package teaui

import (
	"testing"
	"time"

	"tableflip.dev/timeline/pkg/outline"
	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/view"
)

func fixtureRows(t *testing.T) (*timeline.Document, []row) {
	t.Helper()
	n := 0
	doc := outline.Parse(fixture, outline.Options{
		Now: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC),
		NewID: func() string {
			n++
			return string(rune('0' + n))
		},
	})
	rows := buildRows(doc, view.Timeline, view.Options{}, "")
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	return doc, rows
}

func TestDropTarget(t *testing.T) {
	doc, rows := fixtureRows(t)
	tests := []struct {
		name    string
		cursor  int
		grabbed string
		day     int
		pos     int
		ok      bool
	}{
		{name: "header drops first", cursor: 3, grabbed: "1", day: 1, pos: 0, ok: true},
		{name: "after last", cursor: 6, grabbed: "1", day: 1, pos: 2, ok: true},
		{name: "nested row counts its parent", cursor: 5, grabbed: "1", day: 1, pos: 1, ok: true},
		{name: "grabbed task not counted", cursor: 6, grabbed: "3", day: 1, pos: 1, ok: true},
		{name: "empty day", cursor: 7, grabbed: "1", day: 2, pos: 0, ok: true},
		{name: "out of range", cursor: 8, grabbed: "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, pos, ok := dropTarget(doc, rows, tt.cursor, tt.grabbed)
			if ok != tt.ok || (ok && (day != tt.day || pos != tt.pos)) {
				t.Fatalf("dropTarget = (%d, %d, %v), want (%d, %d, %v)", day, pos, ok, tt.day, tt.pos, tt.ok)
			}
		})
	}
}

const searchFixture = `# Timeline

## Today

- [ ] alpha
- [ ] gamma one
- [ ] beta
- [ ] gamma two
- [ ] delta
- [ ] gamma three
`

func TestDropTargetWithQuery(t *testing.T) {
	n := 0
	doc := outline.Parse(searchFixture, outline.Options{NewID: func() string {
		n++
		return string(rune('0' + n))
	}})
	rows := buildRows(doc, view.Timeline, view.Options{}, "gamma")
	// header, gamma one, gamma two, gamma three
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	tests := []struct {
		name    string
		cursor  int
		grabbed string
		pos     int
	}{
		{name: "header drops first", cursor: 0, grabbed: "2", pos: 0},
		{name: "earlier task moves down past hidden rows", cursor: 2, grabbed: "2", pos: 3},
		{name: "later task moves up past hidden rows", cursor: 1, grabbed: "6", pos: 2},
		{name: "hidden earlier task", cursor: 3, grabbed: "1", pos: 5},
		{name: "onto itself", cursor: 1, grabbed: "2", pos: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, pos, ok := dropTarget(doc, rows, tt.cursor, tt.grabbed)
			if !ok || day != 0 || pos != tt.pos {
				t.Fatalf("dropTarget = (%d, %d, %v), want (0, %d, true)", day, pos, ok, tt.pos)
			}
		})
	}
}

func TestInSubtree(t *testing.T) {
	_, rows := fixtureRows(t)
	if !inSubtree(rows, 4, "3") || !inSubtree(rows, 5, "3") {
		t.Fatalf("task and its child are in its subtree")
	}
	if inSubtree(rows, 6, "3") || inSubtree(rows, 3, "3") || inSubtree(rows, 1, "3") {
		t.Fatalf("siblings, headers and earlier rows are not")
	}
}

func TestBuildRowsWithQuery(t *testing.T) {
	n := 0
	doc := outline.Parse(fixture, outline.Options{NewID: func() string {
		n++
		return string(rune('0' + n))
	}})
	rows := buildRows(doc, view.Timeline, view.Options{}, "old")
	// 2024-03-14 with both of its tasks.
	if len(rows) != 3 || !rows[0].header() || rows[1].top != 0 || rows[2].top != 1 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
