package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingRepository источник бронирований для проверки конфликтов
type BookingRepository interface {
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
