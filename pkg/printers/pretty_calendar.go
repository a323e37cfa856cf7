package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/timeline/pkg/timeline"
	"tableflip.dev/timeline/pkg/timeutil"
)

// Calendar prints the month containing on, highlighting days that have
// tasks and marking today.
func (pp *PrettyPrint) Calendar(on time.Time, doc *timeline.Document) {
	then := time.Date(on.Year(), on.Month(), 1, 1, 0, 0, 0, on.Location())
	pp.PrintMonthCount(then, on, MonthCounts(then, doc))
}

// MonthCounts counts tasks per day of the month of then, indexed from zero.
// Days with unresolved headers are skipped.
func MonthCounts(then time.Time, doc *timeline.Document) []int {
	count := make([]int, DaysIn(then))
	for _, d := range doc.Days {
		if !d.Resolved {
			continue
		}
		date, err := timeutil.ParseKey(d.Key)
		if err != nil || date.Year() != then.Year() || date.Month() != then.Month() {
			continue
		}
		n := 0
		d.Walk(func(*timeline.Task) bool {
			n++
			return true
		})
		count[date.Day()-1] += n
	}
	return count
}

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonthCount draws a month grid. Days with a non-zero count are bold
// and today, when it falls in the month, is underlined.
func (pp *PrettyPrint) PrintMonthCount(then, today time.Time, count []int) {
	w := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))
	_, _ = color.New(color.Faint).Fprintln(w, "Su Mo Tu We Th Fr Sa")

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Bold, color.Underline, color.FgHiCyan)
	thisMonth := today.Year() == then.Year() && today.Month() == then.Month()

	for i := 0; i < days; i++ {
		printer := l1
		if i < len(count) && count[i] > 0 {
			printer = l2
		}
		if thisMonth && today.Day() == i+1 {
			printer = l3
		}
		_, _ = printer.Fprintf(w, "%2d", i+1)
		_, _ = fmt.Fprint(w, " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
