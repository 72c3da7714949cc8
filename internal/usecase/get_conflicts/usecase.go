package get_conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/conflict"
)

// UseCase use case диагностики конфликтов по комнате и мастеру
type UseCase struct {
	detector *conflict.Detector
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		detector: conflict.NewDetector(bookingRepo),
		logger:   logger,
	}
}

// Execute возвращает бронирования, пересекающие интервал по комнате и/или мастеру
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetConflicts: date=%s, %s-%s, room=%v, staff=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.RoomID, req.StaffID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	conflicts, err := uc.detector.ListConflicts(ctx, domain.DateOnly(req.Date), req.StartTime, req.EndTime, req.RoomID, req.StaffID, req.ExcludeBookingID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("GetConflicts: validation failed: %v", err)
			return nil, err
		}
		uc.logger.Error("GetConflicts: failed to find conflicts: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{Conflicts: make([]Conflict, 0, len(conflicts))}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			BookingID:  c.Booking.ID,
			Type:       string(c.Type),
			CustomerID: c.Booking.CustomerID,
			RoomID:     c.Booking.RoomID,
			StaffID:    c.Booking.StaffID,
			StartTime:  c.Booking.StartTime,
			EndTime:    c.Booking.EndTime,
			Status:     string(c.Booking.Status),
		})
	}

	uc.logger.Info("GetConflicts: found %d conflicts", len(resp.Conflicts))
	return resp, nil
}
