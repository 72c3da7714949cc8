package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request проверяемое бронирование
// Если EndTime не задан, он вычисляется по длительности услуги
type Request struct {
	Date             time.Time
	StartTime        types.TimeString
	EndTime          *types.TimeString
	ServiceID        *int64
	RoomID           int64
	StaffID          int64
	ExcludeBookingID *int64
}

// Response результат проверки
type Response struct {
	IsValid        bool
	Compatible     bool
	FailedRule     string
	StaffQualified bool
	RoomAvailable  bool
	StaffAvailable bool
	StaffScheduled bool
	StartTime      types.TimeString
	EndTime        types.TimeString
	Conflicts      []Conflict
}

// Conflict пересекающееся бронирование
type Conflict struct {
	BookingID int64
	Type      string
	RoomID    int64
	StaffID   int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
}
