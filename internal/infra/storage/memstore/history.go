package memstore

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Append добавляет запись в историю
func (s *Store) Append(ctx context.Context, entry *domain.BookingHistoryEntry) (*domain.BookingHistoryEntry, error) {
	err := s.write(ctx, func(d *data) error {
		d.lastHistoryID++
		entry.ID = d.lastHistoryID
		entry.CreatedAt = s.now()
		d.history = append(d.history, *entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByBooking получает историю бронирования в порядке добавления
func (s *Store) ListByBooking(_ context.Context, bookingID int64) ([]*domain.BookingHistoryEntry, error) {
	out := make([]*domain.BookingHistoryEntry, 0)
	s.read(func(d *data) {
		for _, e := range d.history {
			if e.BookingID == bookingID {
				entry := e
				out = append(out, &entry)
			}
		}
	})
	return out, nil
}
