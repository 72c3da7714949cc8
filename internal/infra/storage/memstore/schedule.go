package memstore

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// ListByDate получает все интервалы расписания на дату
func (s *Store) ListByDate(_ context.Context, date time.Time) ([]*domain.StaffScheduleEntry, error) {
	return s.listSchedule(func(e *domain.StaffScheduleEntry) bool {
		return domain.IsSameDay(e.Date, date)
	}), nil
}

// ListByStaffAndDate получает интервалы расписания мастера на дату
func (s *Store) ListByStaffAndDate(_ context.Context, staffID int64, date time.Time) ([]*domain.StaffScheduleEntry, error) {
	return s.listSchedule(func(e *domain.StaffScheduleEntry) bool {
		return e.StaffID == staffID && domain.IsSameDay(e.Date, date)
	}), nil
}

// ListInRange получает интервалы расписания за период [from, to] включительно
func (s *Store) ListInRange(_ context.Context, from, to time.Time) ([]*domain.StaffScheduleEntry, error) {
	lo, hi := domain.DateOnly(from), domain.DateOnly(to)
	return s.listSchedule(func(e *domain.StaffScheduleEntry) bool {
		d := domain.DateOnly(e.Date)
		return !d.Before(lo) && !d.After(hi)
	}), nil
}

func (s *Store) listSchedule(match func(e *domain.StaffScheduleEntry) bool) []*domain.StaffScheduleEntry {
	out := make([]*domain.StaffScheduleEntry, 0)
	s.read(func(d *data) {
		for _, e := range d.schedule {
			entry := e
			if match(&entry) {
				out = append(out, &entry)
			}
		}
	})
	return out
}
