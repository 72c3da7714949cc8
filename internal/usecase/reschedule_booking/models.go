package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Config параметры бронирования
type Config struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	AdvanceBookingDays int
	MinNoticeMinutes   int
}

// Request запрос на перенос бронирования
// Пустые StaffID и RoomID оставляют текущие ресурсы
type Request struct {
	BookingID int64
	ActorID   int64
	Date      time.Time
	StartTime types.TimeString
	StaffID   *int64
	RoomID    *int64
}

// Response перенесенное бронирование
type Response struct {
	Booking      *domain.Booking
	PreviousDate time.Time
	PreviousTime types.TimeString
}
