package domain

// Default configuration values
const (
	DefaultOpenTime               = "09:00"
	DefaultCloseTime              = "21:00"
	DefaultSlotStepMinutes        = 15
	DefaultServiceDurationMinutes = 60
	DefaultAdvanceBookingDays     = 90
	DefaultMinNoticeMinutes       = 60
	DefaultMaxRangeDays           = 31
	DefaultInitialStatus          = StatusConfirmed
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые не занимают комнату и мастера
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// InactiveStatusStrings возвращает InactiveStatuses как []string для SQL фильтров
func InactiveStatusStrings() []string {
	out := make([]string, len(InactiveStatuses))
	for i, s := range InactiveStatuses {
		out[i] = string(s)
	}
	return out
}
