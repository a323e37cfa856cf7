package options

import (
	"errors"

	"github.com/spf13/cobra"
)

// DayOptions pick a destination day and position.
type DayOptions struct {
	Day      string
	Position int
	Today    bool
	Tomorrow bool
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "today",
		`Day to use: a day number, a date such as "2024-03-15", "today", "tomorrow" or the header text.`)
}

func AddMoveArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "",
		`Destination day: a day number, a date, "today", "tomorrow" or the header text.`)
	cmd.Flags().IntVarP(&o.Position, "position", "p", -1,
		"Position among the day's top-level tasks, starting at 0. Defaults to the end.")
	cmd.Flags().BoolVar(&o.Today, "today", false,
		"Move to today's day.")
	cmd.Flags().BoolVar(&o.Tomorrow, "tomorrow", false,
		"Move to tomorrow's day.")
}

// Validate checks that exactly one destination was given.
func (o *DayOptions) Validate() error {
	n := 0
	for _, set := range []bool{o.Day != "", o.Today, o.Tomorrow} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return errors.New("one of --day, --today or --tomorrow is required")
	case n > 1:
		return errors.New("only one of --day, --today or --tomorrow may be set")
	}
	return nil
}
