package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Config параметры бронирования
type Config struct {
	InitialStatus      domain.BookingStatus
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	AdvanceBookingDays int // 0 = без ограничения
	MinNoticeMinutes   int
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги
	StaffID    int64            // ID мастера
	RoomID     int64            // ID комнаты
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       uuid.UUID
	CustomerID      int64
	ServiceID       int64
	StaffID         int64
	RoomID          int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		RoomID:          b.RoomID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
