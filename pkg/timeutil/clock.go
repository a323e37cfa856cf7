package timeutil

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Intended for tests.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Key renders t as a canonical YYYY-MM-DD key.
func Key(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseKey parses a canonical key back into a date.
func ParseKey(key string) (time.Time, error) {
	return time.Parse(layoutISO, key)
}
