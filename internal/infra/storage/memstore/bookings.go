package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/conflict"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Create создает новое бронирование
func (s *Store) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	err := s.write(ctx, func(d *data) error {
		d.lastBookingID++
		now := s.now()

		b.ID = d.lastBookingID
		if b.Reference == uuid.Nil {
			b.Reference = uuid.New()
		}
		b.BookingDate = domain.DateOnly(b.BookingDate)
		b.CreatedAt = now
		b.UpdatedAt = now

		d.bookings[b.ID] = *b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	var (
		b  domain.Booking
		ok bool
	)
	s.read(func(d *data) { b, ok = d.bookings[id] })
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

// GetForUpdate получает бронирование. Транзакции хранилища и так выполняются по одной
func (s *Store) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.GetByID(ctx, id)
}

// GetByReference получает бронирование по публичному идентификатору
func (s *Store) GetByReference(_ context.Context, reference uuid.UUID) (*domain.Booking, error) {
	found := s.listBookings(func(b *domain.Booking) bool { return b.Reference == reference })
	if len(found) == 0 {
		return nil, booking.ErrBookingNotFound
	}
	return found[0], nil
}

// ListByCustomer получает бронирования клиента, новые первыми
func (s *Store) ListByCustomer(_ context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error) {
	out := s.listBookings(func(b *domain.Booking) bool {
		if b.CustomerID != filter.CustomerID {
			return false
		}
		if filter.Status != nil && b.Status != *filter.Status {
			return false
		}
		if filter.StartDate != nil && b.BookingDate.Before(domain.DateOnly(*filter.StartDate)) {
			return false
		}
		if filter.EndDate != nil && b.BookingDate.After(domain.DateOnly(*filter.EndDate)) {
			return false
		}
		return true
	})

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ListActiveByDate получает активные бронирования на дату
func (s *Store) ListActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	return s.listBookings(func(b *domain.Booking) bool {
		return b.IsActive() && domain.IsSameDay(b.BookingDate, date)
	}), nil
}

// ListActiveInRange получает активные бронирования за период [from, to] включительно
func (s *Store) ListActiveInRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	lo, hi := domain.DateOnly(from), domain.DateOnly(to)
	return s.listBookings(func(b *domain.Booking) bool {
		return b.IsActive() && !b.BookingDate.Before(lo) && !b.BookingDate.After(hi)
	}), nil
}

// FindConflicting получает активные бронирования ресурса, пересекающие [start, end)
func (s *Store) FindConflicting(
	_ context.Context,
	kind domain.ResourceKind,
	resourceID int64,
	date time.Time,
	start, end types.TimeString,
	excludeID *int64,
) ([]*domain.Booking, error) {
	if kind != domain.ResourceRoom && kind != domain.ResourceStaff {
		return nil, booking.ErrUnknownResource
	}

	q := conflict.Query{Kind: kind, ResourceID: resourceID, Date: date, Start: start, End: end, ExcludeBookingID: excludeID}
	return s.listBookings(func(b *domain.Booking) bool { return conflict.Matches(b, q) }), nil
}

// UpdateStatus обновляет статус бронирования
func (s *Store) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return s.updateBooking(ctx, id, func(b *domain.Booking) {
		b.Status = status
	})
}

// Cancel отменяет бронирование с указанием причины
func (s *Store) Cancel(ctx context.Context, id int64, reason *string) error {
	return s.updateBooking(ctx, id, func(b *domain.Booking) {
		now := s.now()
		b.Status = domain.StatusCancelled
		b.CancellationReason = reason
		b.CancelledAt = &now
	})
}

// Reschedule переносит бронирование на другое время и/или ресурсы
func (s *Store) Reschedule(ctx context.Context, updated *domain.Booking) error {
	return s.updateBooking(ctx, updated.ID, func(b *domain.Booking) {
		b.StaffID = updated.StaffID
		b.RoomID = updated.RoomID
		b.BookingDate = domain.DateOnly(updated.BookingDate)
		b.StartTime = updated.StartTime
		b.EndTime = updated.EndTime
	})
}

func (s *Store) updateBooking(ctx context.Context, id int64, apply func(b *domain.Booking)) error {
	return s.write(ctx, func(d *data) error {
		b, ok := d.bookings[id]
		if !ok {
			return booking.ErrBookingNotFound
		}
		apply(&b)
		b.UpdatedAt = s.now()
		d.bookings[id] = b
		return nil
	})
}

// listBookings возвращает копии бронирований по дате, времени начала и ID
func (s *Store) listBookings(match func(b *domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	s.read(func(d *data) {
		for _, b := range d.bookings {
			item := b
			if match(&item) {
				out = append(out, &item)
			}
		}
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.Before(out[j].BookingDate)
		}
		if out[i].StartTime.Minutes() != out[j].StartTime.Minutes() {
			return out[i].StartTime.IsBefore(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
