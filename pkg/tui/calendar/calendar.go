// Package calendar renders a month grid for the timeline UI.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// Cell is what the grid knows about one day of the month.
type Cell struct {
	Day      int
	Tasks    int
	Open     int
	Today    bool
	Selected bool
}

// Styles controls how cells are drawn.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Open     lipgloss.Style
	Done     lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// Cells summarises the days of doc that fall in month. Several headers for
// the same date add up.
func Cells(doc *timeline.Document, month time.Time, selected string, now time.Time) []Cell {
	todayKey := timeutil.Key(now)
	cells := make([]Cell, DaysIn(month))
	for i := range cells {
		d := time.Date(month.Year(), month.Month(), i+1, 0, 0, 0, 0, time.UTC)
		key := timeutil.Key(d)
		cells[i] = Cell{Day: i + 1, Today: key == todayKey, Selected: key == selected}
	}
	for _, day := range doc.Days {
		if !day.Resolved {
			continue
		}
		date, err := timeutil.ParseKey(day.Key)
		if err != nil || date.Year() != month.Year() || date.Month() != month.Month() {
			continue
		}
		done, total := day.Counts()
		c := &cells[date.Day()-1]
		c.Tasks += len(day.Tasks)
		c.Open += total - done
	}
	return cells
}

// Render draws the month as a titled Sunday-first grid.
func Render(month time.Time, cells []Cell, s Styles) string {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(month)

	lines := []string{
		s.Title.Render(first.Format("January 2006")),
		s.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	offset := int(first.Weekday())
	rows := (offset + days + 6) / 7
	for row := 0; row < rows; row++ {
		cols := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cols = append(cols, "  ")
				continue
			}
			var c Cell
			if day <= len(cells) {
				c = cells[day-1]
			}
			cols = append(cols, renderCell(c, day, s))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cols, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderCell(c Cell, day int, s Styles) string {
	style := s.Empty
	switch {
	case c.Open > 0:
		style = s.Open
	case c.Tasks > 0:
		style = s.Done
	}
	if c.Today {
		style = style.Inherit(s.Today)
	}
	if c.Selected {
		style = style.Inherit(s.Selected)
	}
	return style.Render(fmt.Sprintf("%2d", day))
}

// DaysIn is the number of days in month.
func DaysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
