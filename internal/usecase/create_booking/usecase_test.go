package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type cacheStub struct {
	mu    sync.Mutex
	dates []time.Time
}

func (c *cacheStub) Invalidate(_ context.Context, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append(c.dates, date)
}

type notifierStub struct {
	mu      sync.Mutex
	created []int64
}

func (n *notifierStub) BookingCreated(_ context.Context, b *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b.ID)
}

type metricsStub struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *metricsStub) ObserveBookingAttempt(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type fixture struct {
	uc       *UseCase
	store    *memstore.Store
	cache    *cacheStub
	notifier *notifierStub
	metrics  *metricsStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.SeedDemo(day, 1)

	f := &fixture{
		store:    store,
		cache:    &cacheStub{},
		notifier: &notifierStub{},
		metrics:  &metricsStub{},
	}
	f.uc = newUseCase(store, store, store, f)
	return f
}

func newUseCase(bookings BookingRepository, history HistoryRepository, tx TransactionManager, f *fixture) *UseCase {
	uc := NewUseCase(bookings, f.store, f.store, history, tx, f.cache, f.notifier, f.metrics, Config{
		OpenTime:           "09:00",
		CloseTime:          "21:00",
		AdvanceBookingDays: 30,
		MinNoticeMinutes:   60,
	}, logger.NewNop())
	uc.timeProvider = &fixedTime{t: day.Add(-16 * time.Hour)}
	return uc
}

func request(staffID, roomID int64, start types.TimeString) *Request {
	return &Request{CustomerID: 100, ServiceID: 1, StaffID: staffID, RoomID: roomID, Date: day, StartTime: start}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, request(1, 1, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Классический массаж", resp.ServiceName)
	assert.NotEmpty(t, resp.Reference.String())

	history, err := f.store.ListByBooking(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].FromStatus)
	assert.Equal(t, domain.StatusConfirmed, history[0].ToStatus)

	assert.Equal(t, []time.Time{day}, f.cache.dates)
	assert.Equal(t, []int64{resp.ID}, f.notifier.created)
	assert.Equal(t, []string{metrics.OutcomeCreated}, f.metrics.outcomes)
}

func TestExecute_InitialStatusFromConfig(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.InitialStatus = domain.StatusPending

	resp, err := f.uc.Execute(context.Background(), request(1, 1, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_StaffOverlapInAnotherRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(1, 1, "10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(1, 2, "10:30"))
	assert.ErrorIs(t, err, domain.ErrStaffUnavailable)
	assert.Equal(t, metrics.OutcomeConflict, f.metrics.outcomes[1])
}

func TestExecute_TouchingBookingsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(1, 1, "10:00"))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, request(1, 1, "11:00"))
	require.NoError(t, err)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
		outcome string
	}{
		{
			name:    "room busy",
			req:     request(2, 1, "10:30"),
			wantErr: domain.ErrRoomUnavailable,
			outcome: metrics.OutcomeConflict,
		},
		{
			name:    "room without drainage",
			req:     &Request{CustomerID: 100, ServiceID: 3, StaffID: 2, RoomID: 1, Date: day, StartTime: "12:00"},
			wantErr: domain.ErrIncompatibleResource,
			outcome: metrics.OutcomeIncompatible,
		},
		{
			name:    "couples service in single room",
			req:     &Request{CustomerID: 100, ServiceID: 2, StaffID: 2, RoomID: 1, Date: day, StartTime: "12:00"},
			wantErr: domain.ErrIncompatibleResource,
			outcome: metrics.OutcomeIncompatible,
		},
		{
			name:    "staff without specialization",
			req:     &Request{CustomerID: 100, ServiceID: 3, StaffID: 1, RoomID: 3, Date: day, StartTime: "12:00"},
			wantErr: domain.ErrIncompatibleResource,
			outcome: metrics.OutcomeIncompatible,
		},
		{
			name:    "staff on break",
			req:     request(1, 2, "13:00"),
			wantErr: domain.ErrStaffNotScheduled,
			outcome: metrics.OutcomeNotScheduled,
		},
		{
			name:    "after working hours",
			req:     request(2, 2, "17:30"),
			wantErr: domain.ErrStaffNotScheduled,
			outcome: metrics.OutcomeNotScheduled,
		},
		{
			name:    "unknown service",
			req:     &Request{CustomerID: 100, ServiceID: 42, StaffID: 1, RoomID: 1, Date: day, StartTime: "12:00"},
			wantErr: domain.ErrNotFound,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "unknown room",
			req:     request(1, 42, "12:00"),
			wantErr: domain.ErrNotFound,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "invalid input",
			req:     request(0, 1, "12:00"),
			wantErr: ErrInvalidInput,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "outside business hours",
			req:     request(1, 1, "08:00"),
			wantErr: ErrOutsideBusinessHours,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "date in the past",
			req:     &Request{CustomerID: 100, ServiceID: 1, StaffID: 1, RoomID: 1, Date: day.AddDate(0, 0, -2), StartTime: "12:00"},
			wantErr: ErrInvalidDate,
			outcome: metrics.OutcomeInvalid,
		},
		{
			name:    "too far in the future",
			req:     &Request{CustomerID: 100, ServiceID: 1, StaffID: 1, RoomID: 1, Date: day.AddDate(0, 0, 60), StartTime: "12:00"},
			wantErr: ErrDateTooFarInFuture,
			outcome: metrics.OutcomeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			_, err := f.uc.Execute(ctx, request(1, 1, "10:00"))
			require.NoError(t, err)

			_, err = f.uc.Execute(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.outcome, f.metrics.outcomes[len(f.metrics.outcomes)-1])

			active, err := f.store.ListActiveByDate(ctx, day)
			require.NoError(t, err)
			assert.Len(t, active, 1)
			assert.Len(t, f.notifier.created, 1)
		})
	}
}

func TestExecute_MinNotice(t *testing.T) {
	f := newFixture(t)
	f.uc.timeProvider = &fixedTime{t: day.Add(10 * time.Hour)}

	_, err := f.uc.Execute(context.Background(), request(1, 1, "10:30"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), request(1, 1, "11:00"))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentIdenticalRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(ctx, request(1, 1, "10:00"))
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrRoomUnavailable) || errors.Is(err, domain.ErrStaffUnavailable), err)
	}
	assert.Equal(t, 1, success)

	active, err := f.store.ListActiveByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

type failingHistory struct{}

func (failingHistory) Append(context.Context, *domain.BookingHistoryEntry) (*domain.BookingHistoryEntry, error) {
	return nil, errors.New("disk full")
}

func TestExecute_NoPartialWrites(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(f.store, failingHistory{}, f.store, f)

	_, err := uc.Execute(context.Background(), request(1, 1, "10:00"))
	assert.ErrorIs(t, err, domain.ErrInternal)

	active, err := f.store.ListActiveByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.Empty(t, f.cache.dates)
	assert.Empty(t, f.notifier.created)
}

type lockedTx struct{}

func (lockedTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return &pq.Error{Code: "55P03", Message: "canceling statement due to lock timeout"}
}

func TestExecute_ExhaustedRetriesAreResourceLocked(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(f.store, f.store, lockedTx{}, f)

	_, err := uc.Execute(context.Background(), request(1, 1, "10:00"))
	assert.ErrorIs(t, err, domain.ErrResourceLocked)
	assert.Equal(t, []string{metrics.OutcomeLocked}, f.metrics.outcomes)
}
