package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
)

// UseCase use case для получения слотов дня
type UseCase struct {
	provider SlotsProvider
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(provider SlotsProvider, logger Logger) *UseCase {
	return &UseCase{
		provider: provider,
		logger:   logger,
	}
}

// Execute возвращает сетку слотов с количеством свободных мастеров и комнат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, service=%v, staff=%v, rooms=%v",
		req.Date.Format(domain.DateFormat), req.ServiceID, req.StaffIDs, req.RoomIDs)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	result, err := uc.provider.SlotsForDate(ctx, slots.Request{
		Date:      date,
		ServiceID: req.ServiceID,
		StaffIDs:  req.StaffIDs,
		RoomIDs:   req.RoomIDs,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("GetAvailableSlots: %v", err)
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:      date,
		ServiceID: req.ServiceID,
		Slots:     make([]Slot, 0, len(result)),
	}
	available := 0
	for _, s := range result {
		if s.IsAvailable {
			available++
		}
		resp.Slots = append(resp.Slots, Slot{
			StartTime:           s.Time,
			EndTime:             s.EndTime,
			AvailableStaffCount: s.AvailableStaffCount,
			AvailableRoomCount:  s.AvailableRoomCount,
			IsAvailable:         s.IsAvailable,
			SuggestedStaffID:    s.SuggestedStaffID,
			SuggestedRoomID:     s.SuggestedRoomID,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots, %d available", len(resp.Slots), available)
	return resp, nil
}
