package domain

import "time"

// DateOnly returns midnight UTC of t's calendar date
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsSameDay compares calendar dates ignoring time of day and location
func IsSameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// IsDateInPast reports whether date is earlier than the calendar date of now
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}
