package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindConflicting(
		ctx context.Context,
		kind domain.ResourceKind,
		resourceID int64,
		date time.Time,
		start, end types.TimeString,
		excludeID *int64,
	) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс каталога услуг, комнат и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// ScheduleRepository интерфейс репозитория расписания мастеров
type ScheduleRepository interface {
	ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.StaffScheduleEntry, error)
}

// HistoryRepository интерфейс журнала статусов
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.BookingHistoryEntry) (*domain.BookingHistoryEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сбрасывает закэшированную доступность на дату
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time)
}

// EventNotifier публикует событие о созданном бронировании
type EventNotifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ObserveBookingAttempt(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
