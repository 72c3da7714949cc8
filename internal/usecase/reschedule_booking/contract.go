package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, booking *domain.Booking) error
	FindConflicting(
		ctx context.Context,
		kind domain.ResourceKind,
		resourceID int64,
		date time.Time,
		start, end types.TimeString,
		excludeID *int64,
	) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// ScheduleRepository интерфейс репозитория расписания мастеров
type ScheduleRepository interface {
	ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.StaffScheduleEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache сбрасывает закэшированную доступность на дату
type AvailabilityCache interface {
	Invalidate(ctx context.Context, date time.Time)
}

// EventNotifier публикует событие о переносе
type EventNotifier interface {
	Rescheduled(ctx context.Context, previous, current *domain.Booking)
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
