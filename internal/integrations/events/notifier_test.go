package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

type recordedMessage struct {
	key     string
	payload any
}

type senderStub struct {
	messages []recordedMessage
	err      error
}

func (s *senderStub) PublishJSON(_ context.Context, key string, payload any) error {
	s.messages = append(s.messages, recordedMessage{key: key, payload: payload})
	return s.err
}

type logStub struct {
	warnings []string
}

func (l *logStub) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		CustomerID:  100,
		ServiceID:   1,
		StaffID:     2,
		RoomID:      3,
		BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      domain.StatusConfirmed,
	}
}

func TestNotifier_BookingCreated(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, &logStub{})

	n.BookingCreated(context.Background(), testBooking())

	require.Len(t, sender.messages, 1)
	assert.Equal(t, KeyBookingCreated, sender.messages[0].key)
	payload, ok := sender.messages[0].payload.(BookingCreated)
	require.True(t, ok)
	assert.Equal(t, "2026-03-10", payload.BookingDate)
	assert.Equal(t, "10:00", payload.StartTime)
	assert.Equal(t, "confirmed", payload.Status)
}

func TestNotifier_StatusChangedAndRescheduled(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, &logStub{})

	b := testBooking()
	b.Status = domain.StatusCancelled
	n.StatusChanged(context.Background(), b, domain.StatusConfirmed, nil, nil)

	moved := testBooking()
	moved.StartTime, moved.EndTime = "14:00", "15:00"
	n.Rescheduled(context.Background(), testBooking(), moved)

	require.Len(t, sender.messages, 2)
	changed := sender.messages[0].payload.(BookingStatusChanged)
	assert.Equal(t, "confirmed", changed.FromStatus)
	assert.Equal(t, "cancelled", changed.ToStatus)

	rescheduled := sender.messages[1].payload.(BookingRescheduled)
	assert.Equal(t, KeyBookingRescheduled, sender.messages[1].key)
	assert.Equal(t, "10:00", rescheduled.PreviousStart)
	assert.Equal(t, "14:00", rescheduled.StartTime)
}

func TestNotifier_FailureIsLogged(t *testing.T) {
	sender := &senderStub{err: errors.New("channel closed")}
	log := &logStub{}
	n := NewNotifier(sender, log)

	n.BookingCreated(context.Background(), testBooking())

	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "booking.created")
}

func TestNotifier_CancelledRequestContext(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, &logStub{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.BookingCreated(ctx, testBooking())

	assert.Len(t, sender.messages, 1)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishJSON(context.Background(), KeyBookingCreated, nil))
	assert.NoError(t, p.Close())
}
