package get_conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BookingRepository источник бронирований для поиска конфликтов
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
