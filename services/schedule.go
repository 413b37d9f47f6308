// services/schedule.go
package services

import (
	"time"

	"hvactracker-backend/utils"
)

// Due buckets, most urgent first.
const (
	BucketOverdue   = "Overdue"
	BucketDueToday  = "Due Today"
	BucketDueSoon   = "Due Soon"
	BucketScheduled = "Scheduled"
)

// Due-window sizes in days. The windows are cumulative, not disjoint:
// a unit overdue by two days is inside all three at once.
const (
	WindowToday = 0
	WindowWeek  = 7
	WindowMonth = 30
)

// NextServiceDate returns lastServiceDate + intervalDays calendar days,
// or nil when either input is absent or the interval is not positive.
// Arithmetic is on whole days, so DST shifts cannot move the result.
func NextServiceDate(lastServiceDate *time.Time, intervalDays *int) *time.Time {
	if lastServiceDate == nil || intervalDays == nil || *intervalDays <= 0 {
		return nil
	}
	next := utils.BeginningOfDay(*lastServiceDate).AddDate(0, 0, *intervalDays)
	return &next
}

// DaysRemaining counts whole days from now until the next service date,
// both truncated to midnight. A unit due any time today yields 0;
// negative means overdue.
func DaysRemaining(nextServiceDate, now time.Time) int {
	return utils.DaysBetween(now, nextServiceDate)
}

// ClassifyDue buckets a unit by urgency relative to now.
func ClassifyDue(nextServiceDate, now time.Time) (string, int) {
	days := DaysRemaining(nextServiceDate, now)
	switch {
	case days < 0:
		return BucketOverdue, days
	case days == 0:
		return BucketDueToday, days
	case days <= 7:
		return BucketDueSoon, days
	}
	return BucketScheduled, days
}

// WithinWindow reports whether a unit falls inside a due window.
// Overdue units are inside every window.
func WithinWindow(daysRemaining, windowDays int) bool {
	return daysRemaining <= windowDays
}

// WindowDaysForFilter maps the query-string filter names the frontend
// sends to window sizes. Unknown filters get the week window.
func WindowDaysForFilter(filter string) int {
	switch filter {
	case "today":
		return WindowToday
	case "month":
		return WindowMonth
	default:
		return WindowWeek
	}
}
