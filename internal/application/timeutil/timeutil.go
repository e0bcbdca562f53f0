// Package timeutil holds pure date helpers shared by the projections.
// Every function takes the reference "today" as a parameter; nothing here
// reads the ambient clock.
package timeutil

import (
	"strconv"
	"time"
)

// truncateToDay drops the time-of-day component, keeping the civil date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RelativeDay buckets a date into a human-relative label: "Today",
// "Yesterday", "N days ago", then whole weeks. A positive weekCap bounds
// the label at "{weekCap} weeks ago"; weekCap <= 0 means uncapped.
func RelativeDay(today, date time.Time, weekCap int) string {
	delta := int(truncateToDay(today).Sub(truncateToDay(date)).Hours() / 24)

	switch {
	case delta <= 0:
		return "Today"
	case delta == 1:
		return "Yesterday"
	case delta < 7:
		return strconv.Itoa(delta) + " days ago"
	}

	weeks := delta / 7
	if weekCap > 0 && weeks > weekCap {
		weeks = weekCap
	}
	if weeks == 1 {
		return "1 week ago"
	}
	return strconv.Itoa(weeks) + " weeks ago"
}

// MonthsSince counts whole calendar months from start to today, with both
// dates normalized to the first of their month. Returns 0 when start is
// zero or in the future.
func MonthsSince(today, start time.Time) int {
	if start.IsZero() {
		return 0
	}
	months := (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// WeekBounds returns the Monday 00:00 and next Monday 00:00 around t, the
// running-week window used by the weekly summary.
func WeekBounds(t time.Time) (start, end time.Time) {
	day := truncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	start = day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}
