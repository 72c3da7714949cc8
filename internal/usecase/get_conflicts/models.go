package get_conflicts

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request интервал и ресурсы для поиска конфликтов
// Должен быть задан хотя бы один из RoomID, StaffID
type Request struct {
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	RoomID           *int64
	StaffID          *int64
	ExcludeBookingID *int64
}

// Response найденные конфликты
type Response struct {
	Conflicts []Conflict
}

// Conflict пересекающееся бронирование
type Conflict struct {
	BookingID  int64
	Type       string
	CustomerID int64
	RoomID     int64
	StaffID    int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     string
}
