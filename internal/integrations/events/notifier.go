package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

const publishTimeout = 2 * time.Second

// Sender отправляет сериализованное событие
type Sender interface {
	PublishJSON(ctx context.Context, key string, payload any) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Notifier публикует события бронирований после коммита
// Ошибки публикации только логируются: бронирование уже сохранено
type Notifier struct {
	sender Sender
	log    Logger
	now    func() time.Time
}

// NewNotifier создает новый экземпляр Notifier
func NewNotifier(sender Sender, log Logger) *Notifier {
	return &Notifier{sender: sender, log: log, now: time.Now}
}

// BookingCreated публикует событие booking.created
func (n *Notifier) BookingCreated(ctx context.Context, b *domain.Booking) {
	n.publish(ctx, KeyBookingCreated, b.ID, BookingCreated{
		BookingID:   b.ID,
		Reference:   b.Reference,
		CustomerID:  b.CustomerID,
		ServiceID:   b.ServiceID,
		StaffID:     b.StaffID,
		RoomID:      b.RoomID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		OccurredAt:  n.now().UTC(),
	})
}

// StatusChanged публикует событие booking.status_changed
func (n *Notifier) StatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, changedBy *int64, reason *string) {
	n.publish(ctx, KeyBookingStatusChanged, b.ID, BookingStatusChanged{
		BookingID:  b.ID,
		Reference:  b.Reference,
		CustomerID: b.CustomerID,
		FromStatus: string(from),
		ToStatus:   string(b.Status),
		Reason:     reason,
		ChangedBy:  changedBy,
		OccurredAt: n.now().UTC(),
	})
}

// Rescheduled публикует событие booking.rescheduled
func (n *Notifier) Rescheduled(ctx context.Context, previous, current *domain.Booking) {
	n.publish(ctx, KeyBookingRescheduled, current.ID, BookingRescheduled{
		BookingID:     current.ID,
		Reference:     current.Reference,
		CustomerID:    current.CustomerID,
		PreviousDate:  previous.BookingDate.Format(domain.DateFormat),
		PreviousStart: previous.StartTime.String(),
		BookingDate:   current.BookingDate.Format(domain.DateFormat),
		StartTime:     current.StartTime.String(),
		EndTime:       current.EndTime.String(),
		StaffID:       current.StaffID,
		RoomID:        current.RoomID,
		OccurredAt:    n.now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, key string, bookingID int64, payload any) {
	if n == nil || n.sender == nil {
		return
	}

	// Запрос мог уже завершиться, событие все равно отправляется
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.sender.PublishJSON(ctx, key, payload); err != nil {
		n.log.Warn("events: failed to publish %s for booking_id=%d: %v", key, bookingID, err)
	}
}
