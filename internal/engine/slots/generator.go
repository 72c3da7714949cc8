// Package slots сетка слотов дня со свободными комнатами и мастерами
package slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/compatibility"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/conflict"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Config рабочие часы и параметры сетки
type Config struct {
	OpenTime               types.TimeString
	CloseTime              types.TimeString
	StepMinutes            int
	DefaultDurationMinutes int
	MinNoticeMinutes       int
}

// Request запрос слотов на дату
type Request struct {
	Date      time.Time
	ServiceID *int64
	StaffIDs  []int64 // пусто = все мастера
	RoomIDs   []int64 // пусто = все комнаты
}

// Option настройка генератора
type Option func(*Generator)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(g *Generator) {
		g.timeProvider = tp
	}
}

// Generator генератор слотов
type Generator struct {
	catalog      CatalogReader
	schedules    ScheduleReader
	bookings     BookingReader
	cfg          Config
	timeProvider TimeProvider
}

// NewGenerator создает генератор слотов
func NewGenerator(catalog CatalogReader, schedules ScheduleReader, bookings BookingReader, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		catalog:      catalog,
		schedules:    schedules,
		bookings:     bookings,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config возвращает параметры сетки
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate строит слоты на дату. Для прошедших дат возвращает пустой список
func (g *Generator) Generate(ctx context.Context, req Request) ([]domain.Slot, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	now := g.timeProvider.Now()
	if domain.IsDateInPast(req.Date, now) {
		return []domain.Slot{}, nil
	}

	var service *domain.Service
	if req.ServiceID != nil {
		s, err := g.catalog.GetService(ctx, *req.ServiceID)
		if err != nil {
			return nil, err
		}
		service = s
	}

	duration := g.cfg.DefaultDurationMinutes
	if service != nil && service.DurationMinutes > 0 {
		duration = service.DurationMinutes
	}

	grid, err := BuildGrid(g.cfg.OpenTime, g.cfg.CloseTime, g.cfg.StepMinutes, duration)
	if err != nil {
		return nil, err
	}
	if domain.IsSameDay(req.Date, now) {
		grid = dropBeforeNotice(grid, now, g.cfg.MinNoticeMinutes)
	}
	if len(grid) == 0 {
		return []domain.Slot{}, nil
	}

	var (
		rooms    []*domain.Room
		staff    []*domain.StaffMember
		entries  []*domain.StaffScheduleEntry
		bookings []*domain.Booking
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		rooms, err = g.catalog.ListRooms(gctx, true)
		return err
	})
	group.Go(func() error {
		var err error
		staff, err = g.catalog.ListStaff(gctx, true)
		return err
	})
	group.Go(func() error {
		var err error
		entries, err = g.schedules.ListByDate(gctx, req.Date)
		return err
	})
	group.Go(func() error {
		var err error
		bookings, err = g.bookings.ListActiveByDate(gctx, req.Date)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	rooms = eligibleRooms(service, rooms, req.RoomIDs)
	staff = eligibleStaff(service, staff, req.StaffIDs)
	detector := conflict.NewDetector(conflict.NewSnapshot(bookings))

	result := make([]domain.Slot, 0, len(grid))
	for _, start := range grid {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return nil, err
		}

		slot := domain.Slot{Time: start, EndTime: end}

		for _, s := range staff {
			if !IsStaffScheduled(entries, s.ID, start, end) {
				continue
			}
			busy, err := detector.HasConflict(ctx, conflict.Query{
				Kind: domain.ResourceStaff, ResourceID: s.ID, Date: req.Date, Start: start, End: end,
			})
			if err != nil {
				return nil, err
			}
			if busy {
				continue
			}
			if slot.SuggestedStaffID == nil {
				slot.SuggestedStaffID = ptr.Ptr(s.ID)
			}
			slot.AvailableStaffCount++
		}

		for _, r := range rooms {
			busy, err := detector.HasConflict(ctx, conflict.Query{
				Kind: domain.ResourceRoom, ResourceID: r.ID, Date: req.Date, Start: start, End: end,
			})
			if err != nil {
				return nil, err
			}
			if busy {
				continue
			}
			if slot.SuggestedRoomID == nil {
				slot.SuggestedRoomID = ptr.Ptr(r.ID)
			}
			slot.AvailableRoomCount++
		}

		slot.IsAvailable = slot.AvailableStaffCount > 0 && slot.AvailableRoomCount > 0
		result = append(result, slot)
	}

	return result, nil
}

// dropBeforeNotice убирает слоты, начинающиеся раньше now + minNotice
func dropBeforeNotice(grid []types.TimeString, now time.Time, minNotice int) []types.TimeString {
	earliest := now.Hour()*60 + now.Minute() + minNotice

	out := make([]types.TimeString, 0, len(grid))
	for _, t := range grid {
		if t.Minutes() >= earliest {
			out = append(out, t)
		}
	}
	return out
}

func eligibleRooms(service *domain.Service, rooms []*domain.Room, filter []int64) []*domain.Room {
	allowed := idSet(filter)

	out := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.Active {
			continue
		}
		if allowed != nil && !allowed[r.ID] {
			continue
		}
		if service != nil && !compatibility.IsCompatible(service, r) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func eligibleStaff(service *domain.Service, staff []*domain.StaffMember, filter []int64) []*domain.StaffMember {
	allowed := idSet(filter)

	out := make([]*domain.StaffMember, 0, len(staff))
	for _, s := range staff {
		if allowed != nil && !allowed[s.ID] {
			continue
		}
		if !compatibility.StaffQualified(service, s) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func idSet(ids []int64) map[int64]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
