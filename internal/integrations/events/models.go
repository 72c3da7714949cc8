package events

import (
	"time"

	"github.com/google/uuid"
)

// Ключи маршрутизации событий бронирований
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeyBookingRescheduled   = "booking.rescheduled"
)

// BookingCreated событие создания бронирования
type BookingCreated struct {
	BookingID   int64     `json:"bookingId"`
	Reference   uuid.UUID `json:"reference"`
	CustomerID  int64     `json:"customerId"`
	ServiceID   int64     `json:"serviceId"`
	StaffID     int64     `json:"staffId"`
	RoomID      int64     `json:"roomId"`
	BookingDate string    `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// BookingStatusChanged событие смены статуса бронирования
type BookingStatusChanged struct {
	BookingID  int64     `json:"bookingId"`
	Reference  uuid.UUID `json:"reference"`
	CustomerID int64     `json:"customerId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Reason     *string   `json:"reason,omitempty"`
	ChangedBy  *int64    `json:"changedBy,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// BookingRescheduled событие переноса бронирования
type BookingRescheduled struct {
	BookingID     int64     `json:"bookingId"`
	Reference     uuid.UUID `json:"reference"`
	CustomerID    int64     `json:"customerId"`
	PreviousDate  string    `json:"previousDate"`
	PreviousStart string    `json:"previousStartTime"`
	BookingDate   string    `json:"bookingDate"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	StaffID       int64     `json:"staffId"`
	RoomID        int64     `json:"roomId"`
	OccurredAt    time.Time `json:"occurredAt"`
}
