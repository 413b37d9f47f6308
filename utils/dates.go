// utils/dates.go
package utils

import (
	"math"
	"time"
)

// DateLayout is the wire format for all service dates.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from start to end, both
// truncated to midnight first. Negative when end is before start.
// DST makes the midnight-to-midnight gap 23 or 25 hours, so the
// quotient is rounded rather than truncated.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// ParseDate parses a YYYY-MM-DD string into a local midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
