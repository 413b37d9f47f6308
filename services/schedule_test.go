package services

import (
	"testing"
	"time"

	"hvactracker-backend/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func intPtr(v int) *int { return &v }

func TestNextServiceDateAddsCalendarDays(t *testing.T) {
	last := date(2024, time.January, 1)
	next := NextServiceDate(&last, intPtr(90))
	if next == nil {
		t.Fatal("expected a next service date")
	}
	if want := date(2024, time.March, 31); !next.Equal(want) {
		t.Fatalf("expected %s got %s", utils.FormatDate(want), utils.FormatDate(*next))
	}
}

func TestNextServiceDateIgnoresTimeOfDay(t *testing.T) {
	last := time.Date(2024, time.June, 15, 23, 45, 0, 0, time.Local)
	next := NextServiceDate(&last, intPtr(30))
	if next == nil {
		t.Fatal("expected a next service date")
	}
	if want := date(2024, time.July, 15); !next.Equal(want) {
		t.Fatalf("expected %s got %s", utils.FormatDate(want), utils.FormatDate(*next))
	}
}

func TestNextServiceDateAbsentInputs(t *testing.T) {
	last := date(2024, time.January, 1)

	if NextServiceDate(nil, intPtr(30)) != nil {
		t.Error("expected nil for absent last service date")
	}
	if NextServiceDate(&last, nil) != nil {
		t.Error("expected nil for absent interval")
	}
	if NextServiceDate(&last, intPtr(0)) != nil {
		t.Error("expected nil for zero interval")
	}
	if NextServiceDate(&last, intPtr(-7)) != nil {
		t.Error("expected nil for negative interval")
	}
}

func TestClassifyDueBuckets(t *testing.T) {
	now := date(2024, time.June, 10)

	cases := []struct {
		name       string
		next       time.Time
		wantBucket string
		wantDays   int
	}{
		{"five days overdue", now.AddDate(0, 0, -5), BucketOverdue, -5},
		{"one day overdue", now.AddDate(0, 0, -1), BucketOverdue, -1},
		{"due today", now, BucketDueToday, 0},
		{"due today late in the day", time.Date(2024, time.June, 10, 22, 0, 0, 0, time.Local), BucketDueToday, 0},
		{"due tomorrow", now.AddDate(0, 0, 1), BucketDueSoon, 1},
		{"due in a week", now.AddDate(0, 0, 7), BucketDueSoon, 7},
		{"due in eight days", now.AddDate(0, 0, 8), BucketScheduled, 8},
		{"due in a month", now.AddDate(0, 0, 30), BucketScheduled, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, days := ClassifyDue(tc.next, now)
			if bucket != tc.wantBucket {
				t.Errorf("expected bucket %s got %s", tc.wantBucket, bucket)
			}
			if days != tc.wantDays {
				t.Errorf("expected %d days remaining got %d", tc.wantDays, days)
			}
		})
	}
}

func TestClassifyDueAcrossDSTTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// A unit due tomorrow stays one day out even when the night between
	// is shortened or stretched by a DST shift.
	now := time.Date(2024, time.March, 10, 8, 0, 0, 0, ny)
	bucket, days := ClassifyDue(time.Date(2024, time.March, 11, 0, 0, 0, 0, ny), now)
	if bucket != BucketDueSoon || days != 1 {
		t.Errorf("spring forward: expected %s/1, got %s/%d", BucketDueSoon, bucket, days)
	}

	now = time.Date(2024, time.November, 3, 8, 0, 0, 0, ny)
	bucket, days = ClassifyDue(time.Date(2024, time.November, 4, 0, 0, 0, 0, ny), now)
	if bucket != BucketDueSoon || days != 1 {
		t.Errorf("fall back: expected %s/1, got %s/%d", BucketDueSoon, bucket, days)
	}
}

func TestWithinWindowOverlaps(t *testing.T) {
	// A unit overdue by 2 days sits inside all three windows at once.
	days := -2
	for _, window := range []int{WindowToday, WindowWeek, WindowMonth} {
		if !WithinWindow(days, window) {
			t.Errorf("overdue unit should be inside the %d-day window", window)
		}
	}

	if WithinWindow(3, WindowToday) {
		t.Error("unit due in 3 days should not be inside the today window")
	}
	if !WithinWindow(3, WindowWeek) {
		t.Error("unit due in 3 days should be inside the week window")
	}
	if WithinWindow(12, WindowWeek) {
		t.Error("unit due in 12 days should not be inside the week window")
	}
	if !WithinWindow(12, WindowMonth) {
		t.Error("unit due in 12 days should be inside the month window")
	}
}

func TestWindowDaysForFilter(t *testing.T) {
	if WindowDaysForFilter("today") != WindowToday {
		t.Error("today filter should map to the 0-day window")
	}
	if WindowDaysForFilter("week") != WindowWeek {
		t.Error("week filter should map to the 7-day window")
	}
	if WindowDaysForFilter("month") != WindowMonth {
		t.Error("month filter should map to the 30-day window")
	}
	if WindowDaysForFilter("bogus") != WindowWeek {
		t.Error("unknown filter should fall back to the week window")
	}
}
