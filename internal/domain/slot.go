package domain

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Slot is one start time of the day grid with the resources free for it
type Slot struct {
	Time                types.TimeString
	EndTime             types.TimeString
	AvailableStaffCount int
	AvailableRoomCount  int
	IsAvailable         bool
	SuggestedStaffID    *int64
	SuggestedRoomID     *int64
}

// DaySummary is the coarse availability of one day
type DaySummary struct {
	Date            time.Time
	TotalSlots      int
	BookedSlots     int
	AvailableSlots  int
	HasAvailability bool
}
