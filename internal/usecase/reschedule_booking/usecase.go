package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/bookingcheck"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// UseCase use case для переноса бронирования на другое время или ресурсы
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	checker      *bookingcheck.Checker
	txManager    TransactionManager
	cache        AvailabilityCache
	notifier     EventNotifier
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	notifier EventNotifier,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		checker:      bookingcheck.NewChecker(bookingRepo, scheduleRepo),
		txManager:    txManager,
		cache:        cache,
		notifier:     notifier,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование
// Проверки повторяют создание, при этом само бронирование не считается конфликтом.
// Статус не меняется, поэтому запись в журнал не добавляется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, actor=%d, date=%s, time=%s",
		req.BookingID, req.ActorID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	if err := validateDate(date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	var previous, current domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetForUpdate(txCtx, req.BookingID)
		if err != nil {
			return uc.loadError("booking", req.BookingID, err)
		}
		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
		}
		previous = *booking

		end, err := req.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: booking does not fit into the day", ErrInvalidTime)
		}
		if err := validateTime(uc.cfg, date, req.StartTime, end, now); err != nil {
			uc.logger.Warn("RescheduleBooking: time validation failed: %v", err)
			return err
		}

		service, err := uc.catalogRepo.GetService(txCtx, booking.ServiceID)
		if err != nil {
			return uc.loadError("service", booking.ServiceID, err)
		}

		roomID, staffID := booking.RoomID, booking.StaffID
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		if req.StaffID != nil {
			staffID = *req.StaffID
		}

		room, err := uc.catalogRepo.GetRoom(txCtx, roomID)
		if err != nil {
			return uc.loadError("room", roomID, err)
		}
		staff, err := uc.catalogRepo.GetStaff(txCtx, staffID)
		if err != nil {
			return uc.loadError("staff", staffID, err)
		}

		err = uc.checker.Check(txCtx, bookingcheck.Candidate{
			Service:          service,
			Room:             room,
			Staff:            staff,
			Date:             date,
			Start:            req.StartTime,
			End:              end,
			ExcludeBookingID: &booking.ID,
		})
		if err != nil {
			uc.logger.Warn("RescheduleBooking: check failed: %v", err)
			return err
		}

		current = *booking
		current.RoomID = room.ID
		current.StaffID = staff.ID
		current.BookingDate = date
		current.StartTime = req.StartTime
		current.EndTime = end

		if err := uc.bookingRepo.Reschedule(txCtx, &current); err != nil {
			return uc.loadError("booking", booking.ID, err)
		}
		return nil
	})

	if txmanager.IsRetryable(err) {
		uc.logger.Warn("RescheduleBooking: resources are locked by a concurrent booking: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrResourceLocked, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s %s to %s %s",
		current.ID, previous.BookingDate.Format(domain.DateFormat), previous.StartTime,
		current.BookingDate.Format(domain.DateFormat), current.StartTime)

	uc.cache.Invalidate(ctx, previous.BookingDate)
	if !domain.IsSameDay(previous.BookingDate, current.BookingDate) {
		uc.cache.Invalidate(ctx, current.BookingDate)
	}
	uc.notifier.Rescheduled(ctx, &previous, &current)

	return &Response{
		Booking:      &current,
		PreviousDate: previous.BookingDate,
		PreviousTime: previous.StartTime,
	}, nil
}

func (uc *UseCase) loadError(what string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("RescheduleBooking: %s id=%d not found", what, id)
		return err
	}
	if txmanager.IsRetryable(err) {
		return err
	}
	uc.logger.Error("RescheduleBooking: failed to load %s id=%d: %v", what, id, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, what, err)
}
