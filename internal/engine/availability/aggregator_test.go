package availability

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
)

var day1 = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type fakeData struct {
	entries      []*domain.StaffScheduleEntry
	bookings     []*domain.Booking
	slots        []domain.Slot
	scheduleHits atomic.Int32
	generateHits atomic.Int32
}

func (f *fakeData) ListInRange(_ context.Context, from, to time.Time) ([]*domain.StaffScheduleEntry, error) {
	f.scheduleHits.Add(1)
	out := make([]*domain.StaffScheduleEntry, 0)
	for _, e := range f.entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeData) ListActiveInRange(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !b.BookingDate.Before(from) && !b.BookingDate.After(to) && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeData) Generate(_ context.Context, _ slots.Request) ([]domain.Slot, error) {
	f.generateHits.Add(1)
	return f.slots, nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (any, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, any, time.Time, time.Time, time.Duration) error {
	return errors.New("cache down")
}

func (brokenCache) InvalidateDate(context.Context, time.Time) error {
	return errors.New("cache down")
}

// threeDays: по одному мастеру 09:00-11:00 каждый день, одно бронирование во второй день
func threeDays() *fakeData {
	data := &fakeData{}
	for i := 0; i < 3; i++ {
		data.entries = append(data.entries, &domain.StaffScheduleEntry{
			StaffID: 1, Date: day1.AddDate(0, 0, i), StartTime: "09:00", EndTime: "11:00", Status: domain.ScheduleAvailable,
		})
	}
	data.entries = append(data.entries, &domain.StaffScheduleEntry{
		StaffID: 1, Date: day1, StartTime: "11:00", EndTime: "12:00", Status: domain.ScheduleBreak,
	})
	data.bookings = []*domain.Booking{
		{ID: 1, StaffID: 1, RoomID: 1, BookingDate: day1.AddDate(0, 0, 1), StartTime: "09:00", EndTime: "09:30", Status: domain.StatusConfirmed},
		{ID: 2, StaffID: 1, RoomID: 1, BookingDate: day1.AddDate(0, 0, 1), StartTime: "10:00", EndTime: "10:30", Status: domain.StatusCancelled},
	}
	return data
}

func newAggregator(data *fakeData, c Cache, cfg Config) *Aggregator {
	return NewAggregator(data, data, data, c, cfg, logger.NewNop(), nil)
}

func defaultConfig() Config {
	return Config{
		SummaryTTL:      5 * time.Minute,
		SlotsTTL:        time.Minute,
		MaxRangeDays:    31,
		SlotStepMinutes: 30,
	}
}

func TestSummarizeRange_ThreeDayScenario(t *testing.T) {
	agg := newAggregator(threeDays(), nil, defaultConfig())

	got, err := agg.SummarizeRange(context.Background(), day1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for _, d := range got {
		assert.Equal(t, 4, d.TotalSlots)
	}
	assert.Equal(t, 0, got[0].BookedSlots)
	assert.Equal(t, 1, got[1].BookedSlots)
	assert.Equal(t, 3, got[1].AvailableSlots)
	assert.True(t, got[1].HasAvailability)
	assert.Equal(t, day1.AddDate(0, 0, 2), got[2].Date)
}

func TestSummarizeRange_FixedSlotsPerStaff(t *testing.T) {
	cfg := defaultConfig()
	cfg.FixedSlotsPerStaff = 12
	agg := newAggregator(threeDays(), nil, cfg)

	got, err := agg.SummarizeRange(context.Background(), day1, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, got[0].TotalSlots)
	assert.Equal(t, 11, got[1].AvailableSlots)
}

func TestSummarizeRange_NoScheduleMeansNoAvailability(t *testing.T) {
	data := &fakeData{bookings: []*domain.Booking{
		{ID: 1, BookingDate: day1, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
	}}
	agg := newAggregator(data, nil, defaultConfig())

	got, err := agg.SummarizeRange(context.Background(), day1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, got[0].AvailableSlots)
	assert.False(t, got[0].HasAvailability)
}

func TestSummarizeRange_Validation(t *testing.T) {
	agg := newAggregator(threeDays(), nil, defaultConfig())

	_, err := agg.SummarizeRange(context.Background(), day1, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = agg.SummarizeRange(context.Background(), day1, 32)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = agg.SummarizeRange(context.Background(), time.Time{}, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummarizeRange_CacheAndInvalidate(t *testing.T) {
	data := threeDays()
	agg := newAggregator(data, cache.New(time.Minute, time.Minute), defaultConfig())
	ctx := context.Background()

	first, err := agg.SummarizeRange(ctx, day1, 3)
	require.NoError(t, err)
	second, err := agg.SummarizeRange(ctx, day1, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), data.scheduleHits.Load())

	agg.Invalidate(ctx, day1.AddDate(0, 0, 1))

	_, err = agg.SummarizeRange(ctx, day1, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), data.scheduleHits.Load())
}

func TestSummarizeRange_ZeroTTLSkipsCache(t *testing.T) {
	data := threeDays()
	cfg := defaultConfig()
	cfg.SummaryTTL = 0
	agg := newAggregator(data, cache.New(time.Minute, time.Minute), cfg)

	for i := 0; i < 2; i++ {
		_, err := agg.SummarizeRange(context.Background(), day1, 3)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), data.scheduleHits.Load())
}

func TestCache_FailsOpen(t *testing.T) {
	data := threeDays()
	data.slots = []domain.Slot{{Time: "09:00", EndTime: "10:00", IsAvailable: true}}
	agg := newAggregator(data, brokenCache{}, defaultConfig())
	ctx := context.Background()

	summary, err := agg.SummarizeRange(ctx, day1, 3)
	require.NoError(t, err)
	assert.Len(t, summary, 3)

	got, err := agg.SlotsForDate(ctx, slots.Request{Date: day1})
	require.NoError(t, err)
	assert.Equal(t, data.slots, got)

	assert.NotPanics(t, func() { agg.Invalidate(ctx, day1) })
}

func TestSlotsForDate_CachedPerFilter(t *testing.T) {
	data := &fakeData{slots: []domain.Slot{{Time: "09:00", EndTime: "10:00"}}}
	agg := newAggregator(data, cache.New(time.Minute, time.Minute), defaultConfig())
	ctx := context.Background()

	req := slots.Request{Date: day1, ServiceID: ptr.Ptr(int64(1)), StaffIDs: []int64{3, 1}}
	_, err := agg.SlotsForDate(ctx, req)
	require.NoError(t, err)

	req.StaffIDs = []int64{1, 3}
	_, err = agg.SlotsForDate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), data.generateHits.Load(), "filter order does not change the key")

	_, err = agg.SlotsForDate(ctx, slots.Request{Date: day1})
	require.NoError(t, err)
	assert.Equal(t, int32(2), data.generateHits.Load())

	agg.Invalidate(ctx, day1)
	_, err = agg.SlotsForDate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(3), data.generateHits.Load())
}

// blockingGenerator держит вычисление до закрытия release
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	ctxErr  atomic.Value
	slots   []domain.Slot
}

func (g *blockingGenerator) Generate(ctx context.Context, _ slots.Request) ([]domain.Slot, error) {
	close(g.started)
	<-g.release
	if err := ctx.Err(); err != nil {
		g.ctxErr.Store(err)
		return nil, err
	}
	return g.slots, nil
}

func TestSlotsForDate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gen := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		slots:   []domain.Slot{{Time: "09:00", EndTime: "10:00", IsAvailable: true}},
	}
	data := &fakeData{}
	agg := NewAggregator(data, data, gen, cache.New(time.Minute, time.Minute), defaultConfig(), logger.NewNop(), nil)
	req := slots.Request{Date: day1}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := agg.SlotsForDate(firstCtx, req)
		firstErr <- err
	}()
	<-gen.started

	type result struct {
		slots []domain.Slot
		err   error
	}
	second := make(chan result, 1)
	go func() {
		got, err := agg.SlotsForDate(context.Background(), req)
		second <- result{slots: got, err: err}
	}()

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(gen.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, gen.slots, res.slots)
	assert.Nil(t, gen.ctxErr.Load())
}
