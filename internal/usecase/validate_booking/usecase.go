package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/bookingcheck"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/compatibility"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// UseCase use case предварительной проверки бронирования без записи
type UseCase struct {
	catalogRepo     CatalogRepository
	checker         *bookingcheck.Checker
	defaultDuration int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	defaultDuration int,
	logger Logger,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultServiceDurationMinutes
	}
	return &UseCase{
		catalogRepo:     catalogRepo,
		checker:         bookingcheck.NewChecker(bookingRepo, scheduleRepo),
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Execute выполняет все проверки создания бронирования и возвращает полную диагностику
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: date=%s, start=%s, room=%d, staff=%d, service=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.RoomID, req.StaffID, req.ServiceID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	var service *domain.Service
	if req.ServiceID != nil {
		s, err := uc.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			return nil, uc.loadError("service", *req.ServiceID, err)
		}
		service = s
	}

	end, err := uc.endTime(req, service)
	if err != nil {
		return nil, err
	}

	room, err := uc.catalogRepo.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, uc.loadError("room", req.RoomID, err)
	}
	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		return nil, uc.loadError("staff", req.StaffID, err)
	}

	res, err := uc.checker.Evaluate(ctx, bookingcheck.Candidate{
		Service:          service,
		Room:             room,
		Staff:            staff,
		Date:             domain.DateOnly(req.Date),
		Start:            req.StartTime,
		End:              end,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		uc.logger.Error("ValidateBooking: evaluation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		IsValid:        res.IsValid(),
		Compatible:     res.Compatible,
		StaffQualified: res.StaffQualified,
		RoomAvailable:  res.RoomAvailable,
		StaffAvailable: res.StaffAvailable,
		StaffScheduled: res.StaffScheduled,
		StartTime:      req.StartTime,
		EndTime:        end,
		Conflicts:      make([]Conflict, 0, len(res.Conflicts)),
	}
	if res.Rule != compatibility.RuleNone {
		resp.FailedRule = res.Rule.String()
	}
	for _, c := range res.Conflicts {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			BookingID: c.Booking.ID,
			Type:      string(c.Type),
			RoomID:    c.Booking.RoomID,
			StaffID:   c.Booking.StaffID,
			StartTime: c.Booking.StartTime,
			EndTime:   c.Booking.EndTime,
			Status:    string(c.Booking.Status),
		})
	}

	uc.logger.Info("ValidateBooking: isValid=%t, conflicts=%d", resp.IsValid, len(resp.Conflicts))
	return resp, nil
}

func (uc *UseCase) endTime(req *Request, service *domain.Service) (end types.TimeString, err error) {
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil || !req.StartTime.IsBefore(*req.EndTime) {
			return "", fmt.Errorf("%w: endTime must be a valid time after startTime", ErrInvalidInput)
		}
		return *req.EndTime, nil
	}

	duration := uc.defaultDuration
	if service != nil && service.DurationMinutes > 0 {
		duration = service.DurationMinutes
	}
	end, err = req.StartTime.AddMinutes(duration)
	if err != nil {
		return "", fmt.Errorf("%w: booking does not fit into the day", ErrInvalidInput)
	}
	return end, nil
}

func (uc *UseCase) loadError(what string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("ValidateBooking: %s id=%d not found", what, id)
		return err
	}
	uc.logger.Error("ValidateBooking: failed to get %s id=%d: %v", what, id, err)
	return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, what, err)
}
