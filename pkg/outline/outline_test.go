package outline

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/timeline/pkg/metadata"
	"tableflip.dev/timeline/pkg/timeline"
)

var today = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func parse(text string) *timeline.Document {
	return Parse(text, Options{DateFormat: "YYYY-MM-DD", Now: today, NewID: sequence()})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line      string
		marker    string
		kind      Kind
		text      string
		indent    int
		completed bool
	}{
		{"## Today", "##", KindHeader, "Today", 0, false},
		{"##Today", "##", KindOther, "##Today", 0, false},
		{"### Today", "##", KindOther, "### Today", 0, false},
		{"### Today", "###", KindHeader, "Today", 0, false},
		{"- [ ] Buy milk", "##", KindCheckbox, "Buy milk", 0, false},
		{"  - [x] done", "##", KindCheckbox, "done", 2, true},
		{"    - [X] DONE", "##", KindCheckbox, "DONE", 4, true},
		{"- [ ]", "##", KindCheckbox, "", 0, false},
		{"- note", "##", KindBullet, "note", 0, false},
		{"\t- tabbed", "##", KindBullet, "tabbed", 1, false},
		{"- [?] odd", "##", KindBullet, "[?] odd", 0, false},
		{"-nope", "##", KindOther, "-nope", 0, false},
		{"", "##", KindOther, "", 0, false},
		{"free text", "##", KindOther, "free text", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Classify(tt.line, tt.marker)
			if got.Kind != tt.kind || got.Text != tt.text || got.Indent != tt.indent || got.Completed != tt.completed {
				t.Fatalf("got %+v (%s)", got, got.Kind)
			}
		})
	}
}

func TestParseNesting(t *testing.T) {
	doc := parse("## Today\n\n- [ ] A\n  - [ ] B\n    - [ ] C\n- [ ] D\n")
	if len(doc.Days) != 1 {
		t.Fatalf("expected one day, got %d", len(doc.Days))
	}
	tasks := doc.Days[0].Tasks
	if len(tasks) != 2 || tasks[0].Text != "A" || tasks[1].Text != "D" {
		t.Fatalf("top level: %+v", tasks)
	}
	a := tasks[0]
	if len(a.Subtasks) != 1 || a.Subtasks[0].Text != "B" {
		t.Fatalf("A.subtasks: %+v", a.Subtasks)
	}
	b := a.Subtasks[0]
	if len(b.Subtasks) != 1 || b.Subtasks[0].Text != "C" {
		t.Fatalf("B.subtasks: %+v", b.Subtasks)
	}
	assertLevels(t, doc)
}

func TestParseLevelJumpAttachesToNearestAncestor(t *testing.T) {
	doc := parse("## Today\n- [ ] A\n      - [ ] deep\n    - [ ] mid\n  - [ ] shallow\n")
	a := doc.Days[0].Tasks[0]
	got := []string{}
	for _, s := range a.Subtasks {
		got = append(got, s.Text)
	}
	if !reflect.DeepEqual(got, []string{"deep", "mid", "shallow"}) {
		t.Fatalf("no phantom parents expected, got %v", got)
	}
	if doc.Tasks() != 4 {
		t.Fatalf("expected 4 tasks, got %d", doc.Tasks())
	}
	assertLevels(t, doc)
}

func TestParseIndentedFirstTaskIsTopLevel(t *testing.T) {
	doc := parse("## Today\n    - [ ] indented\n      - [ ] child\n    - [ ] sibling\n")
	tasks := doc.Days[0].Tasks
	if len(tasks) != 2 || len(tasks[0].Subtasks) != 1 {
		t.Fatalf("unexpected shape: %+v", tasks)
	}
	assertLevels(t, doc)
}

func TestParseIgnoresLinesBeforeFirstHeader(t *testing.T) {
	doc := parse("# Timeline\n- [ ] orphan\nsome text\n## Today\n- [ ] kept\n")
	if doc.Tasks() != 1 || doc.Days[0].Tasks[0].Text != "kept" {
		t.Fatalf("unexpected tasks: %+v", doc.Days)
	}
	if len(doc.Anomalies) != 0 {
		t.Fatalf("lines before the first day are not anomalies: %+v", doc.Anomalies)
	}
}

func TestParseRecordsAnomalies(t *testing.T) {
	doc := parse("## Today\n- [ ] a\nstray prose\n\n- b\n")
	if len(doc.Anomalies) != 1 || doc.Anomalies[0].Line != 3 {
		t.Fatalf("anomalies: %+v", doc.Anomalies)
	}
	if doc.Tasks() != 2 {
		t.Fatalf("stray text must not break parsing")
	}
}

func TestParseBulletsAndMetadata(t *testing.T) {
	doc := parse("## Today\n- [x] Done thing\n- Buy milk [due:: tomorrow] [start:: 9:00]\n")
	done := doc.Days[0].Tasks[0]
	if !done.Checkbox || !done.Completed {
		t.Fatalf("checkbox state: %+v", done)
	}
	bullet := doc.Days[0].Tasks[1]
	if bullet.Checkbox || bullet.Completed {
		t.Fatalf("bullet must not carry completion: %+v", bullet)
	}
	if bullet.Text != "Buy milk" {
		t.Fatalf("text: %q", bullet.Text)
	}
	want := metadata.Fields{{Key: "due", Value: "tomorrow"}, {Key: "start", Value: "9:00"}}
	if !reflect.DeepEqual(bullet.Metadata, want) {
		t.Fatalf("metadata: %v", bullet.Metadata)
	}
	if bullet.DayKey != "2024-03-15" {
		t.Fatalf("day key: %q", bullet.DayKey)
	}
}

func TestParseDays(t *testing.T) {
	doc := parse("## Today\n## Tomorrow\n## Q1 Planning\n## 2024-03-15\n## Mar 20, 2024\n")
	keys := []string{}
	for _, d := range doc.Days {
		keys = append(keys, d.Key)
	}
	want := []string{"2024-03-15", "2024-03-16", "Q1 Planning", "2024-03-15", "2024-03-20"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys: %v", keys)
	}
	if !doc.Days[0].IsToday || doc.Days[1].IsToday || doc.Days[2].IsToday || !doc.Days[3].IsToday {
		t.Fatalf("today flags wrong")
	}
	if doc.Days[2].Resolved || doc.Days[2].Display != "Q1 Planning" {
		t.Fatalf("fallback day: %+v", doc.Days[2])
	}
	if doc.Days[4].Display != "Mar 20, 2024" {
		t.Fatalf("display must stay verbatim: %q", doc.Days[4].Display)
	}
}

func TestParseCustomMarkerAndCRLF(t *testing.T) {
	doc := Parse("### Today\r\n- [ ] a\r\n## not a day\r\n", Options{Marker: "###", Now: today, NewID: sequence()})
	if len(doc.Days) != 1 || doc.Days[0].Key != "2024-03-15" {
		t.Fatalf("days: %+v", doc.Days)
	}
	if doc.Days[0].Tasks[0].Text != "a" {
		t.Fatalf("carriage return leaked: %q", doc.Days[0].Tasks[0].Text)
	}
}

func TestParseAssignsUniqueIDs(t *testing.T) {
	doc := Parse("## Today\n- a\n- b\n  - c\n", Options{Now: today})
	seen := map[string]bool{}
	for _, d := range doc.Days {
		d.Walk(func(task *timeline.Task) bool {
			if task.ID == "" || seen[task.ID] {
				t.Fatalf("id %q empty or reused", task.ID)
			}
			seen[task.ID] = true
			return true
		})
	}
}

func TestSerialize(t *testing.T) {
	in := "## Today\n\n- [ ] Your first task\n  - [start:: 9:00] [end:: 10:00]\n- [X] Another task with [due:: tomorrow]\n- plain\n"
	got := Serialize(parse(in), "")
	want := "# Timeline\n\n" +
		"## Today\n\n" +
		"- [ ] Your first task\n" +
		"  - [start:: 9:00] [end:: 10:00]\n" +
		"- [x] Another task with [due:: tomorrow]\n" +
		"- plain\n" +
		"\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeEmptyDocument(t *testing.T) {
	if got := Serialize(&timeline.Document{}, "##"); got != "# Timeline\n\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"# Timeline\n\n## Today\n\n- [ ] A [p:: 1]\n  - [x] B\n    - C\n- D\n\n## Q1 Planning\n\n- [ ] [due:: soon] idea\n",
		"## 2024-03-10\n- [ ]\n-  spaced\n      - [X] deep\n## Tomorrow\n",
		"junk\n## Yesterday\n\ttabbed text\n- [ ] x [a:: 1] mid [b:: 2] end\n",
	}
	for _, in := range inputs {
		first := parse(in)
		out := Serialize(first, "")
		second := parse(out)
		if !sameShape(first, second) {
			t.Errorf("round trip changed document\ninput:\n%s\noutput:\n%s", in, out)
		}
		if again := Serialize(second, ""); again != out {
			t.Errorf("serialization is not idempotent:\n%s\nvs\n%s", out, again)
		}
		assertLevels(t, second)
	}
}

func sameShape(a, b *timeline.Document) bool {
	if len(a.Days) != len(b.Days) {
		return false
	}
	for i := range a.Days {
		if a.Days[i].Key != b.Days[i].Key || !sameTasks(a.Days[i].Tasks, b.Days[i].Tasks) {
			return false
		}
	}
	return true
}

func sameTasks(a, b []*timeline.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Text != y.Text || x.Checkbox != y.Checkbox || x.Completed != y.Completed || x.Level != y.Level {
			return false
		}
		if !reflect.DeepEqual(x.Metadata.Map(), y.Metadata.Map()) {
			return false
		}
		if !sameTasks(x.Subtasks, y.Subtasks) {
			return false
		}
	}
	return true
}

func assertLevels(t *testing.T, doc *timeline.Document) {
	t.Helper()
	var check func(tasks []*timeline.Task, level int)
	check = func(tasks []*timeline.Task, level int) {
		for _, task := range tasks {
			if task.Level != level {
				t.Fatalf("task %q has level %d, want %d", task.Text, task.Level, level)
			}
			check(task.Subtasks, level+1)
		}
	}
	for _, d := range doc.Days {
		check(d.Tasks, 0)
	}
}
