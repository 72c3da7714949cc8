package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
)

// SlotsProvider источник слотов дня (агрегатор доступности с кэшем)
type SlotsProvider interface {
	SlotsForDate(ctx context.Context, req slots.Request) ([]domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
