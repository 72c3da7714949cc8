package conflict

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Snapshot BookingSource поверх заранее загруженных бронирований дня
// Генератор слотов загружает бронирования один раз и проверяет все слоты по снимку
type Snapshot struct {
	bookings []*domain.Booking
}

// NewSnapshot создает снимок. Неактивные бронирования отбрасываются
func NewSnapshot(bookings []*domain.Booking) *Snapshot {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return &Snapshot{bookings: active}
}

// Len возвращает число активных бронирований в снимке
func (s *Snapshot) Len() int {
	return len(s.bookings)
}

// FindConflicting реализует BookingSource
func (s *Snapshot) FindConflicting(
	_ context.Context,
	kind domain.ResourceKind,
	resourceID int64,
	date time.Time,
	start, end types.TimeString,
	excludeID *int64,
) ([]*domain.Booking, error) {
	q := Query{Kind: kind, ResourceID: resourceID, Date: date, Start: start, End: end, ExcludeBookingID: excludeID}

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if Matches(b, q) {
			out = append(out, b)
		}
	}
	return out, nil
}
