package slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	services map[int64]*domain.Service
	rooms    []*domain.Room
	staff    []*domain.StaffMember
	entries  []*domain.StaffScheduleEntry
	bookings []*domain.Booking
}

func (f *fakeStore) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: service %d", domain.ErrNotFound, id)
	}
	return s, nil
}

func (f *fakeStore) ListRooms(context.Context, bool) ([]*domain.Room, error) { return f.rooms, nil }

func (f *fakeStore) ListStaff(context.Context, bool) ([]*domain.StaffMember, error) {
	return f.staff, nil
}

func (f *fakeStore) ListByDate(context.Context, time.Time) ([]*domain.StaffScheduleEntry, error) {
	return f.entries, nil
}

func (f *fakeStore) ListActiveByDate(context.Context, time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func entry(staffID int64, start, end string, status domain.ScheduleStatus) *domain.StaffScheduleEntry {
	return &domain.StaffScheduleEntry{
		StaffID:   staffID,
		Date:      day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		Status:    status,
	}
}

func newStore() *fakeStore {
	return &fakeStore{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Swedish massage", DurationMinutes: 60, Category: "massage", MinRoomCapacity: 1, Active: true},
			2: {ID: 2, Name: "Mud wrap", DurationMinutes: 60, Category: "massage", MinRoomCapacity: 1, RequiresSpecializedDrainage: true, Active: true},
		},
		rooms: []*domain.Room{
			{ID: 2, BedCapacity: 1, HasSpecializedDrainage: true, Active: true},
			{ID: 1, BedCapacity: 1, Active: true},
		},
		staff: []*domain.StaffMember{
			{ID: 1, Specializations: []string{"massage"}, Active: true},
			{ID: 2, Specializations: []string{"facial"}, Active: true},
		},
		entries: []*domain.StaffScheduleEntry{
			entry(1, "09:00", "13:00", domain.ScheduleAvailable),
			entry(1, "11:00", "11:30", domain.ScheduleBreak),
			entry(2, "09:00", "13:00", domain.ScheduleAvailable),
		},
		bookings: []*domain.Booking{
			{ID: 100, RoomID: 1, StaffID: 1, BookingDate: day, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
			{ID: 101, RoomID: 2, StaffID: 1, BookingDate: day, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusCancelled},
		},
	}
}

func newGenerator(store *fakeStore, now time.Time) *Generator {
	cfg := Config{
		OpenTime:               "09:00",
		CloseTime:              "13:00",
		StepMinutes:            30,
		DefaultDurationMinutes: 60,
		MinNoticeMinutes:       60,
	}
	return NewGenerator(store, store, store, cfg, WithTimeProvider(fixedTime{now: now}))
}

func TestBuildGrid(t *testing.T) {
	grid, err := BuildGrid("09:00", "12:00", 30, 60)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, grid)

	grid, err = BuildGrid("09:00", "09:30", 15, 60)
	require.NoError(t, err)
	assert.Empty(t, grid)

	_, err = BuildGrid("09:00", "12:00", 0, 60)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIsStaffScheduled(t *testing.T) {
	entries := []*domain.StaffScheduleEntry{
		entry(1, "09:00", "13:00", domain.ScheduleAvailable),
		entry(1, "11:00", "11:30", domain.ScheduleBreak),
		entry(2, "14:00", "18:00", domain.ScheduleAvailable),
	}

	assert.True(t, IsStaffScheduled(entries, 1, "09:00", "10:00"))
	assert.True(t, IsStaffScheduled(entries, 1, "10:00", "11:00"))
	assert.False(t, IsStaffScheduled(entries, 1, "10:30", "11:30"))
	assert.False(t, IsStaffScheduled(entries, 1, "12:30", "13:30"))
	assert.False(t, IsStaffScheduled(entries, 2, "09:00", "10:00"))
	assert.False(t, IsStaffScheduled(entries, 3, "09:00", "10:00"))
}

func TestGenerate_DaySlots(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	require.Len(t, got, 7)

	byTime := make(map[types.TimeString]domain.Slot, len(got))
	for _, s := range got {
		byTime[s.Time] = s
	}

	first := byTime["09:00"]
	assert.True(t, first.IsAvailable)
	assert.Equal(t, types.TimeString("10:00"), first.EndTime)
	assert.Equal(t, 1, first.AvailableStaffCount)
	assert.Equal(t, 2, first.AvailableRoomCount)
	assert.Equal(t, int64(1), *first.SuggestedStaffID)
	assert.Equal(t, int64(1), *first.SuggestedRoomID)

	overlap := byTime["09:30"]
	assert.False(t, overlap.IsAvailable)
	assert.Equal(t, 0, overlap.AvailableStaffCount)
	assert.Equal(t, 1, overlap.AvailableRoomCount)
	assert.Equal(t, int64(2), *overlap.SuggestedRoomID)
	assert.Nil(t, overlap.SuggestedStaffID)

	assert.False(t, byTime["11:00"].IsAvailable, "break blocks the slot")
	assert.True(t, byTime["11:30"].IsAvailable)
	assert.True(t, byTime["12:00"].IsAvailable)
}

func TestGenerate_Filters(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(1)), StaffIDs: []int64{2}})
	require.NoError(t, err)
	for _, s := range got {
		assert.Zero(t, s.AvailableStaffCount, "facial therapist cannot perform massage")
	}

	got, err = g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(1)), RoomIDs: []int64{2}})
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].AvailableRoomCount)
	assert.Equal(t, int64(2), *got[0].SuggestedRoomID)
}

func TestGenerate_DrainageOnlyRoom(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	for _, s := range got {
		assert.LessOrEqual(t, s.AvailableRoomCount, 1)
		if s.SuggestedRoomID != nil {
			assert.Equal(t, int64(2), *s.SuggestedRoomID)
		}
	}
}

func TestGenerate_InactiveServiceHasNoFreeSlots(t *testing.T) {
	store := newStore()
	store.services[3] = &domain.Service{ID: 3, DurationMinutes: 60, Category: "massage", MinRoomCapacity: 1, Active: false}
	g := newGenerator(store, day.AddDate(0, 0, -1))

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(3))})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.False(t, s.IsAvailable)
		assert.Zero(t, s.AvailableRoomCount)
		assert.Nil(t, s.SuggestedRoomID)
	}
}

func TestGenerate_WithoutServiceUsesAllStaff(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))

	got, err := g.Generate(context.Background(), Request{Date: day})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, 2, got[0].AvailableStaffCount)
}

func TestGenerate_PastDate(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, 1))

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerate_TodayRespectsNotice(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 10, 0, 0, time.UTC)
	g := newGenerator(newStore(), now)

	got, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("11:30"), got[0].Time)
	assert.Equal(t, types.TimeString("12:00"), got[1].Time)
}

func TestGenerate_UnknownService(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))

	_, err := g.Generate(context.Background(), Request{Date: day, ServiceID: ptr.Ptr(int64(99))})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_Idempotent(t *testing.T) {
	g := newGenerator(newStore(), day.AddDate(0, 0, -1))
	req := Request{Date: day, ServiceID: ptr.Ptr(int64(1))}

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
