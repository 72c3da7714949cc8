package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// CatalogReader справочник услуг, комнат и мастеров
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListRooms(ctx context.Context, activeOnly bool) ([]*domain.Room, error)
	ListStaff(ctx context.Context, activeOnly bool) ([]*domain.StaffMember, error)
}

// ScheduleReader расписание мастеров
type ScheduleReader interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.StaffScheduleEntry, error)
}

// BookingReader активные бронирования дня
type BookingReader interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
