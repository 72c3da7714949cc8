package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
)

// Cache кэш результатов доступности
// from/to задают диапазон дат, который покрывает значение (для инвалидации)
type Cache interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any, from, to time.Time, ttl time.Duration) error
	InvalidateDate(ctx context.Context, date time.Time) error
}

// ScheduleReader расписание мастеров за период
type ScheduleReader interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.StaffScheduleEntry, error)
}

// BookingReader активные бронирования за период
type BookingReader interface {
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// SlotGenerator генератор слотов на день
type SlotGenerator interface {
	Generate(ctx context.Context, req slots.Request) ([]domain.Slot, error)
}

// Metrics счетчики попаданий в кэш
type Metrics interface {
	ObserveCache(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
