// Package month holds calendar helpers for rent that falls due on the first
// day of every month.
package month

import (
	"time"
)

// FirstOf returns midnight UTC on the first day of t's calendar month.
func FirstOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the first day of the month following t's month.
func Next(t time.Time) time.Time {
	return FirstOf(t).AddDate(0, 1, 0)
}

// CountDueDates counts the first-of-month dates d with from <= d <= end.
// Both bounds are compared by calendar day.
func CountDueDates(from, end time.Time) int {
	start := FirstOf(from)
	if start.Before(day(from)) {
		start = start.AddDate(0, 1, 0)
	}
	last := day(end)
	if start.After(last) {
		return 0
	}

	months := (last.Year()-start.Year())*12 + int(last.Month()) - int(start.Month())
	return months + 1
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
