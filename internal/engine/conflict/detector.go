// Package conflict поиск бронирований, пересекающих интервал по комнате или мастеру
package conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingSource отдает кандидатов на конфликт для ресурса и даты
// Реализации: репозиторий бронирований (с FOR UPDATE в транзакции) и Snapshot
type BookingSource interface {
	FindConflicting(
		ctx context.Context,
		kind domain.ResourceKind,
		resourceID int64,
		date time.Time,
		start, end types.TimeString,
		excludeID *int64,
	) ([]*domain.Booking, error)
}

// Query описывает проверяемый интервал [Start, End) на одном ресурсе
type Query struct {
	Kind             domain.ResourceKind
	ResourceID       int64
	Date             time.Time
	Start            types.TimeString
	End              types.TimeString
	ExcludeBookingID *int64
}

// Validate проверяет, что интервал непустой и ресурс задан
func (q Query) Validate() error {
	if q.Kind != domain.ResourceRoom && q.Kind != domain.ResourceStaff {
		return fmt.Errorf("%w: unknown resource kind %d", domain.ErrValidation, q.Kind)
	}
	if q.ResourceID <= 0 {
		return fmt.Errorf("%w: resource id must be positive", domain.ErrValidation)
	}
	if err := q.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", domain.ErrValidation, err)
	}
	if err := q.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", domain.ErrValidation, err)
	}
	if !q.Start.IsBefore(q.End) {
		return fmt.Errorf("%w: start %s must be before end %s", domain.ErrValidation, q.Start, q.End)
	}
	return nil
}

// Detector проверяет пересечения бронирований
type Detector struct {
	source BookingSource
}

// NewDetector создает детектор поверх источника бронирований
func NewDetector(source BookingSource) *Detector {
	return &Detector{source: source}
}

// FindConflicts возвращает активные бронирования ресурса, пересекающие интервал
func (d *Detector) FindConflicts(ctx context.Context, q Query) ([]*domain.Booking, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	candidates, err := d.source.FindConflicting(ctx, q.Kind, q.ResourceID, q.Date, q.Start, q.End, q.ExcludeBookingID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Booking, 0, len(candidates))
	for _, b := range candidates {
		if Matches(b, q) {
			out = append(out, b)
		}
	}
	return out, nil
}

// HasConflict возвращает true, если интервал занят
func (d *Detector) HasConflict(ctx context.Context, q Query) (bool, error) {
	conflicts, err := d.FindConflicts(ctx, q)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// ListConflicts собирает конфликты по комнате и мастеру для диагностики
// Хотя бы один из roomID, staffID должен быть задан
func (d *Detector) ListConflicts(
	ctx context.Context,
	date time.Time,
	start, end types.TimeString,
	roomID, staffID *int64,
	excludeID *int64,
) ([]domain.Conflict, error) {
	if roomID == nil && staffID == nil {
		return nil, fmt.Errorf("%w: room id or staff id is required", domain.ErrValidation)
	}

	type target struct {
		kind domain.ResourceKind
		id   *int64
	}

	conflicts := make([]domain.Conflict, 0)
	for _, t := range []target{{domain.ResourceRoom, roomID}, {domain.ResourceStaff, staffID}} {
		if t.id == nil {
			continue
		}
		found, err := d.FindConflicts(ctx, Query{
			Kind:             t.kind,
			ResourceID:       *t.id,
			Date:             date,
			Start:            start,
			End:              end,
			ExcludeBookingID: excludeID,
		})
		if err != nil {
			return nil, err
		}
		for _, b := range found {
			conflicts = append(conflicts, domain.Conflict{Booking: b, Type: domain.ConflictTypeFor(t.kind)})
		}
	}
	return conflicts, nil
}

// Overlaps проверяет пересечение полуинтервалов [s1, e1) и [s2, e2)
// Интервалы, касающиеся границами, не пересекаются
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && e1.IsAfter(s2)
}

// Matches возвращает true, если бронирование конфликтует с запросом
func Matches(b *domain.Booking, q Query) bool {
	if !b.IsActive() {
		return false
	}
	if q.ExcludeBookingID != nil && b.ID == *q.ExcludeBookingID {
		return false
	}
	if !domain.IsSameDay(b.BookingDate, q.Date) {
		return false
	}
	switch q.Kind {
	case domain.ResourceRoom:
		if b.RoomID != q.ResourceID {
			return false
		}
	case domain.ResourceStaff:
		if b.StaffID != q.ResourceID {
			return false
		}
	default:
		return false
	}
	return Overlaps(b.StartTime, b.EndTime, q.Start, q.End)
}
