package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

func setup(t *testing.T) (*UseCase, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	store.SeedDemo(day, 1)

	_, err := store.Create(context.Background(), &domain.Booking{
		CustomerID:      100,
		ServiceID:       3,
		StaffID:         2,
		RoomID:          3,
		BookingDate:     day,
		StartTime:       "10:00",
		EndTime:         "10:45",
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)

	generator := slots.NewGenerator(store, store, store, slots.Config{
		OpenTime:               "09:00",
		CloseTime:              "21:00",
		StepMinutes:            15,
		DefaultDurationMinutes: 60,
		MinNoticeMinutes:       60,
	}, slots.WithTimeProvider(&fixedTime{t: day.Add(-24 * time.Hour)}))

	aggregator := availability.NewAggregator(store, store, generator, cache.New(time.Minute, time.Minute), availability.Config{
		SummaryTTL:      time.Minute,
		SlotsTTL:        time.Minute,
		MaxRangeDays:    31,
		SlotStepMinutes: 15,
	}, logger.NewNop(), nil)

	return NewUseCase(aggregator, logger.NewNop()), store
}

func slotAt(t *testing.T, resp *Response, start types.TimeString) Slot {
	t.Helper()
	for _, s := range resp.Slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestExecute_DrainageServiceSlots(t *testing.T) {
	uc, _ := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{Date: day, ServiceID: ptr.Ptr(int64(3))})
	require.NoError(t, err)

	first := slotAt(t, resp, "09:00")
	assert.True(t, first.IsAvailable)
	assert.Equal(t, types.TimeString("09:45"), first.EndTime)
	assert.Equal(t, 1, first.AvailableRoomCount)
	require.NotNil(t, first.SuggestedRoomID)
	assert.Equal(t, int64(3), *first.SuggestedRoomID)
	require.NotNil(t, first.SuggestedStaffID)
	assert.Equal(t, int64(2), *first.SuggestedStaffID)

	assert.False(t, slotAt(t, resp, "10:00").IsAvailable)
	assert.False(t, slotAt(t, resp, "10:30").IsAvailable)
	assert.True(t, slotAt(t, resp, "10:45").IsAvailable)
	assert.False(t, slotAt(t, resp, "17:30").IsAvailable)
}

func TestExecute_Idempotent(t *testing.T) {
	uc, _ := setup(t)
	req := &Request{Date: day, ServiceID: ptr.Ptr(int64(1)), StaffIDs: []int64{2, 1}}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{Date: day, RoomIDs: []int64{-1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: day, ServiceID: ptr.Ptr(int64(42))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
