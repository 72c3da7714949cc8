package domain

import "time"

// BookingHistoryEntry is an append-only record of a booking status change.
// FromStatus is nil for the creation entry.
type BookingHistoryEntry struct {
	ID         int64
	BookingID  int64
	FromStatus *BookingStatus
	ToStatus   BookingStatus
	ChangedBy  *int64
	Reason     *string
	CreatedAt  time.Time
}
