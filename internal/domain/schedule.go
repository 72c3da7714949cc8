package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// ScheduleStatus is the kind of a staff schedule interval
type ScheduleStatus string

const (
	ScheduleAvailable   ScheduleStatus = "available"
	ScheduleBooked      ScheduleStatus = "booked"
	ScheduleBreak       ScheduleStatus = "break"
	ScheduleUnavailable ScheduleStatus = "unavailable"
)

// StaffScheduleEntry is one interval of a staff member's working day
type StaffScheduleEntry struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ScheduleStatus
}

// DurationMinutes returns the length of the interval
func (e *StaffScheduleEntry) DurationMinutes() int {
	return e.StartTime.MinutesUntil(e.EndTime)
}

// Covers reports whether the entry fully contains [start, end)
func (e *StaffScheduleEntry) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(e.StartTime) && !end.IsAfter(e.EndTime)
}

// Overlaps reports whether the entry intersects [start, end)
func (e *StaffScheduleEntry) Overlaps(start, end types.TimeString) bool {
	return e.StartTime.IsBefore(end) && e.EndTime.IsAfter(start)
}
