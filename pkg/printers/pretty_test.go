package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/timeline/pkg/metadata"
	"tableflip.dev/timeline/pkg/timeline"
)

func init() {
	color.NoColor = true
}

func sampleDoc() *timeline.Document {
	return &timeline.Document{Days: []*timeline.Day{{
		Key:      "2024-03-15",
		Display:  "2024-03-15",
		Resolved: true,
		IsToday:  true,
		Tasks: []*timeline.Task{{
			ID:       "0123456789abcdef",
			Text:     "Write report",
			Checkbox: true,
			Metadata: metadata.Fields{{Key: "due", Value: "friday"}},
			Subtasks: []*timeline.Task{{ID: "b", Text: "Outline", Checkbox: true, Completed: true, Level: 1}},
		}, {
			ID:   "c",
			Text: "Note",
		}},
	}, {
		Key:     "Someday",
		Display: "Someday",
	}}}
}

func TestDocument(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Document(sampleDoc(), nil)

	want := "● 2024-03-15 - 1/2 done\n" +
		"☐ Write report [due:: friday]\n" +
		"  ☑ Outline\n" +
		"• Note\n" +
		"\n" +
		"◌ Someday - 0 entries\n" +
		" none\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestDocumentShowID(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Document(sampleDoc(), []int{0})
	if !strings.Contains(buf.String(), "01234567  ☐ Write report") {
		t.Fatalf("short id missing:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Someday") {
		t.Fatalf("unselected day printed")
	}
}

func TestMonthCounts(t *testing.T) {
	then := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	count := MonthCounts(then, sampleDoc())
	if len(count) != 31 || count[14] != 3 {
		t.Fatalf("unexpected counts %v", count)
	}
}

func TestCalendarGrid(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Calendar(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), sampleDoc())

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2024") {
		t.Fatalf("missing title: %q", lines[0])
	}
	// February 1st 2024 was a Thursday.
	if lines[2] != "             1  2  3 " {
		t.Fatalf("unexpected first week %q", lines[2])
	}
	if !strings.Contains(buf.String(), "29 ") {
		t.Fatalf("leap day missing")
	}
}

func TestExport(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := Export(&buf, format, sampleDoc()); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(buf.String(), "Write report") || !strings.Contains(buf.String(), "friday") {
			t.Fatalf("%s export incomplete:\n%s", format, buf.String())
		}
	}
	if err := Export(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Fatalf("expected error for xml")
	}
}
