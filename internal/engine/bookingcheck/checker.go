// Package bookingcheck повторная проверка комнаты, мастера и интервала перед записью бронирования
package bookingcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/compatibility"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/conflict"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// ScheduleReader расписание одного мастера на дату
type ScheduleReader interface {
	ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.StaffScheduleEntry, error)
}

// Candidate проверяемое бронирование
// Service может быть nil, тогда совместимость не проверяется
type Candidate struct {
	Service          *domain.Service
	Room             *domain.Room
	Staff            *domain.StaffMember
	Date             time.Time
	Start            types.TimeString
	End              types.TimeString
	ExcludeBookingID *int64
}

// Result полная диагностика кандидата
type Result struct {
	Compatible     bool
	Rule           compatibility.Rule
	StaffQualified bool
	RoomAvailable  bool
	StaffAvailable bool
	StaffScheduled bool
	Conflicts      []domain.Conflict
}

// IsValid возвращает true, если бронирование можно создать
func (r *Result) IsValid() bool {
	return r.Compatible && r.StaffQualified && r.RoomAvailable && r.StaffAvailable && r.StaffScheduled
}

// Checker проверка совместимости, конфликтов и расписания
// Внутри транзакции источник бронирований блокирует найденные строки
type Checker struct {
	detector  *conflict.Detector
	schedules ScheduleReader
}

// NewChecker создает проверку поверх источника бронирований и расписания
func NewChecker(source conflict.BookingSource, schedules ScheduleReader) *Checker {
	return &Checker{
		detector:  conflict.NewDetector(source),
		schedules: schedules,
	}
}

// Check проверяет кандидата и возвращает первую найденную причину отказа:
// совместимость, занятость комнаты, занятость мастера, расписание мастера
func (c *Checker) Check(ctx context.Context, cand Candidate) error {
	if cand.Service != nil {
		if rule := compatibility.Evaluate(cand.Service, cand.Room); rule != compatibility.RuleNone {
			return fmt.Errorf("%w: room %d: %s", domain.ErrIncompatibleResource, cand.Room.ID, rule)
		}
	}
	if !compatibility.StaffQualified(cand.Service, cand.Staff) {
		return fmt.Errorf("%w: staff %d cannot perform this service", domain.ErrIncompatibleResource, cand.Staff.ID)
	}

	roomBusy, err := c.detector.HasConflict(ctx, c.query(cand, domain.ResourceRoom, cand.Room.ID))
	if err != nil {
		return err
	}
	if roomBusy {
		return fmt.Errorf("%w: room %d at %s-%s", domain.ErrRoomUnavailable, cand.Room.ID, cand.Start, cand.End)
	}

	staffBusy, err := c.detector.HasConflict(ctx, c.query(cand, domain.ResourceStaff, cand.Staff.ID))
	if err != nil {
		return err
	}
	if staffBusy {
		return fmt.Errorf("%w: staff %d at %s-%s", domain.ErrStaffUnavailable, cand.Staff.ID, cand.Start, cand.End)
	}

	scheduled, err := c.isScheduled(ctx, cand)
	if err != nil {
		return err
	}
	if !scheduled {
		return fmt.Errorf("%w: staff %d at %s-%s", domain.ErrStaffNotScheduled, cand.Staff.ID, cand.Start, cand.End)
	}

	return nil
}

// Evaluate выполняет все проверки без раннего выхода
func (c *Checker) Evaluate(ctx context.Context, cand Candidate) (*Result, error) {
	res := &Result{Compatible: true, Rule: compatibility.RuleNone}

	if cand.Service != nil {
		res.Rule = compatibility.Evaluate(cand.Service, cand.Room)
		res.Compatible = res.Rule == compatibility.RuleNone
	}
	res.StaffQualified = compatibility.StaffQualified(cand.Service, cand.Staff)

	conflicts, err := c.detector.ListConflicts(ctx, cand.Date, cand.Start, cand.End, &cand.Room.ID, &cand.Staff.ID, cand.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	res.Conflicts = conflicts
	res.RoomAvailable = true
	res.StaffAvailable = true
	for _, cf := range conflicts {
		switch cf.Type {
		case domain.ConflictRoom:
			res.RoomAvailable = false
		case domain.ConflictStaff:
			res.StaffAvailable = false
		}
	}

	res.StaffScheduled, err = c.isScheduled(ctx, cand)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Checker) isScheduled(ctx context.Context, cand Candidate) (bool, error) {
	entries, err := c.schedules.ListByStaffAndDate(ctx, cand.Staff.ID, cand.Date)
	if err != nil {
		return false, err
	}
	return slots.IsStaffScheduled(entries, cand.Staff.ID, cand.Start, cand.End), nil
}

func (c *Checker) query(cand Candidate, kind domain.ResourceKind, id int64) conflict.Query {
	return conflict.Query{
		Kind:             kind,
		ResourceID:       id,
		Date:             cand.Date,
		Start:            cand.Start,
		End:              cand.End,
		ExcludeBookingID: cand.ExcludeBookingID,
	}
}
