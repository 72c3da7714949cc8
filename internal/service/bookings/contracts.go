package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// HistoryRepository интерфейс журнала статусов
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.BookingHistoryEntry) (*domain.BookingHistoryEntry, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingHistoryEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сбрасывает закэшированную доступность на дату
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time)
}

// EventNotifier публикует событие о смене статуса
type EventNotifier interface {
	StatusChanged(ctx context.Context, booking *domain.Booking, from domain.BookingStatus, changedBy *int64, reason *string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
