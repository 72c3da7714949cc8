// Package availability сводка доступности по дням и кэширование результатов
package availability

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
)

const (
	cacheSummary = "summary"
	cacheSlots   = "slots"
)

// computeTimeout ограничивает общее вычисление, которое не отменяется вместе с запросом
const computeTimeout = 30 * time.Second

// Результаты обращения к кэшу (совпадают с метками pkg/metrics)
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Config параметры агрегатора
type Config struct {
	SummaryTTL      time.Duration // 0 отключает кэш сводки
	SlotsTTL        time.Duration // 0 отключает кэш слотов
	MaxRangeDays    int
	SlotStepMinutes int
	// FixedSlotsPerStaff > 0 включает упрощенный расчет емкости:
	// число мастеров в расписании дня * FixedSlotsPerStaff
	FixedSlotsPerStaff int
}

// Aggregator сводка доступности по дням и детализация по слотам
type Aggregator struct {
	schedules ScheduleReader
	bookings  BookingReader
	generator SlotGenerator
	cache     Cache
	cfg       Config
	logger    Logger
	metrics   Metrics

	group singleflight.Group
}

// NewAggregator создает агрегатор. cache может быть nil
func NewAggregator(
	schedules ScheduleReader,
	bookings BookingReader,
	generator SlotGenerator,
	cache Cache,
	cfg Config,
	logger Logger,
	metrics Metrics,
) *Aggregator {
	return &Aggregator{
		schedules: schedules,
		bookings:  bookings,
		generator: generator,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
	}
}

// SummarizeRange возвращает сводку по numDays дням начиная со startDate
func (a *Aggregator) SummarizeRange(ctx context.Context, startDate time.Time, numDays int) ([]domain.DaySummary, error) {
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if numDays < 1 || numDays > a.cfg.MaxRangeDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, a.cfg.MaxRangeDays)
	}

	from := domain.DateOnly(startDate)
	to := from.AddDate(0, 0, numDays-1)
	key := fmt.Sprintf("%s:%s:%d", cacheSummary, from.Format(domain.DateFormat), numDays)

	v, err := a.cached(ctx, cacheSummary, key, from, to, a.cfg.SummaryTTL, func(ctx context.Context) (any, error) {
		return a.computeSummary(ctx, from, numDays)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.DaySummary)), nil
}

// SlotsForDate возвращает слоты дня, делегируя генератору
func (a *Aggregator) SlotsForDate(ctx context.Context, req slots.Request) ([]domain.Slot, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	date := domain.DateOnly(req.Date)
	v, err := a.cached(ctx, cacheSlots, slotsKey(req), date, date, a.cfg.SlotsTTL, func(ctx context.Context) (any, error) {
		return a.generator.Generate(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.Slot)), nil
}

// Invalidate сбрасывает закэшированные данные, затрагивающие дату
// Ошибка кэша только логируется
func (a *Aggregator) Invalidate(ctx context.Context, date time.Time) {
	if a.cache == nil {
		return
	}
	if err := a.cache.InvalidateDate(ctx, domain.DateOnly(date)); err != nil {
		a.logger.Warn("Availability: failed to invalidate cache for %s: %v", date.Format(domain.DateFormat), err)
	}
}

// cached читает значение из кэша или вычисляет его. Ошибки кэша не прерывают запрос.
// Одновременные промахи по одному ключу схлопываются в одно вычисление
func (a *Aggregator) cached(
	ctx context.Context,
	cacheName, key string,
	from, to time.Time,
	ttl time.Duration,
	compute func(ctx context.Context) (any, error),
) (any, error) {
	useCache := a.cache != nil && ttl > 0

	if useCache {
		v, ok, err := a.cache.Get(ctx, key)
		switch {
		case err != nil:
			a.observe(cacheName, resultError)
			a.logger.Warn("Availability: cache read failed for key=%s: %v", key, err)
		case ok:
			a.observe(cacheName, resultHit)
			return v, nil
		default:
			a.observe(cacheName, resultMiss)
		}
	}

	// Вычисление общее для всех ожидающих и не отменяется вместе с запросом, который его запустил.
	// Каждый вызывающий ждет результат до отмены своего контекста
	ch := a.group.DoChan(key, func() (any, error) {
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), computeTimeout)
		defer cancel()

		result, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}
		if useCache {
			if err := a.cache.Set(computeCtx, key, result, from, to, ttl); err != nil {
				a.logger.Warn("Availability: cache write failed for key=%s: %v", key, err)
			}
		}
		return result, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *Aggregator) observe(cacheName, result string) {
	if a.metrics != nil {
		a.metrics.ObserveCache(cacheName, result)
	}
}

func (a *Aggregator) computeSummary(ctx context.Context, from time.Time, numDays int) ([]domain.DaySummary, error) {
	to := from.AddDate(0, 0, numDays-1)

	var (
		entries  []*domain.StaffScheduleEntry
		bookings []*domain.Booking
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		entries, err = a.schedules.ListInRange(gctx, from, to)
		return err
	})
	group.Go(func() error {
		var err error
		bookings, err = a.bookings.ListActiveInRange(gctx, from, to)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	entriesByDay := make(map[time.Time][]*domain.StaffScheduleEntry)
	for _, e := range entries {
		d := domain.DateOnly(e.Date)
		entriesByDay[d] = append(entriesByDay[d], e)
	}

	bookedByDay := make(map[time.Time]int)
	for _, b := range bookings {
		if b.IsActive() {
			bookedByDay[domain.DateOnly(b.BookingDate)]++
		}
	}

	result := make([]domain.DaySummary, 0, numDays)
	for i := 0; i < numDays; i++ {
		d := from.AddDate(0, 0, i)
		total := a.capacity(entriesByDay[d])
		booked := bookedByDay[d]

		available := total - booked
		if available < 0 {
			available = 0
		}

		result = append(result, domain.DaySummary{
			Date:            d,
			TotalSlots:      total,
			BookedSlots:     booked,
			AvailableSlots:  available,
			HasAvailability: available > 0,
		})
	}
	return result, nil
}

// capacity емкость дня: сумма floor(длительность / шаг) по интервалам available
func (a *Aggregator) capacity(entries []*domain.StaffScheduleEntry) int {
	if a.cfg.FixedSlotsPerStaff > 0 {
		staff := make(map[int64]struct{})
		for _, e := range entries {
			if e.Status == domain.ScheduleAvailable {
				staff[e.StaffID] = struct{}{}
			}
		}
		return len(staff) * a.cfg.FixedSlotsPerStaff
	}

	if a.cfg.SlotStepMinutes <= 0 {
		return 0
	}

	total := 0
	for _, e := range entries {
		if e.Status != domain.ScheduleAvailable {
			continue
		}
		if minutes := e.DurationMinutes(); minutes > 0 {
			total += minutes / a.cfg.SlotStepMinutes
		}
	}
	return total
}

func slotsKey(req slots.Request) string {
	service := "any"
	if req.ServiceID != nil {
		service = strconv.FormatInt(*req.ServiceID, 10)
	}
	return strings.Join([]string{
		cacheSlots,
		domain.DateOnly(req.Date).Format(domain.DateFormat),
		service,
		joinIDs(req.StaffIDs),
		joinIDs(req.RoomIDs),
	}, ":")
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "*"
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
