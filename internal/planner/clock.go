package planner

import (
	"fmt"
	"time"
)

// ParseClock converts "HH:MM" (or "HH:MM:SS", seconds ignored) into minutes
// from midnight.
func ParseClock(clock string) (int, error) {
	if len(clock) > 5 {
		clock = clock[:5]
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// At pins a minutes-from-midnight clock value onto a calendar date, in the
// date's location.
func At(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}
