package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// BlocksResources reports whether a booking in this status occupies its room and staff
func (s BookingStatus) BlocksResources() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// Booking is a reservation of one service with one room and one staff member
type Booking struct {
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
	Status          BookingStatus

	// Denormalized service data, kept as it was at booking time
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its room and staff
func (b *Booking) IsActive() bool {
	return b.Status.BlocksResources()
}

// CanTransitionTo reports whether the status change is allowed by the lifecycle
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(StatusCancelled)
}

// CanBeRescheduled returns true while the visit has not started
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CustomerBookingsFilter filters the bookings of one customer
type CustomerBookingsFilter struct {
	CustomerID int64
	Status     *BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
