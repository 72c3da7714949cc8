package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/bookingcheck"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	historyRepo  HistoryRepository
	checker      *bookingcheck.Checker
	txManager    TransactionManager
	cache        AvailabilityCache
	notifier     EventNotifier
	metrics      Metrics
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	notifier EventNotifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.InitialStatus == "" {
		cfg.InitialStatus = domain.DefaultInitialStatus
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		historyRepo:  historyRepo,
		checker:      bookingcheck.NewChecker(bookingRepo, scheduleRepo),
		txManager:    txManager,
		cache:        cache,
		notifier:     notifier,
		metrics:      metrics,
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка комнаты, мастера и расписания и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, staff=%d, room=%d, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.StaffID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime)

	result, err := uc.execute(ctx, req)
	uc.metrics.ObserveBookingAttempt(outcomeFor(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	uc.cache.Invalidate(ctx, result.BookingDate)
	uc.notifier.BookingCreated(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)

	// 2. Валидация даты
	if err := validateDate(date, now, uc.cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга и время окончания
		service, err := uc.catalogRepo.GetService(txCtx, req.ServiceID)
		if err != nil {
			return uc.loadError("service", req.ServiceID, err)
		}
		if !service.Active {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", service.ID)
			return fmt.Errorf("%w: service %d is inactive", domain.ErrIncompatibleResource, service.ID)
		}

		end, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: service does not fit into the day: %v", ErrInvalidInput, err)
		}
		if err := validateBookingTime(uc.cfg, date, req.StartTime, end, now); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 3.2. Комната и мастер
		room, err := uc.catalogRepo.GetRoom(txCtx, req.RoomID)
		if err != nil {
			return uc.loadError("room", req.RoomID, err)
		}
		staff, err := uc.catalogRepo.GetStaff(txCtx, req.StaffID)
		if err != nil {
			return uc.loadError("staff", req.StaffID, err)
		}

		// 3.3. Совместимость, конфликты (с блокировкой строк) и расписание
		err = uc.checker.Check(txCtx, bookingcheck.Candidate{
			Service: service,
			Room:    room,
			Staff:   staff,
			Date:    date,
			Start:   req.StartTime,
			End:     end,
		})
		if err != nil {
			uc.logger.Warn("CreateBooking: check failed: %v", err)
			return err
		}

		// 3.4. Бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			ServiceID:       service.ID,
			StaffID:         staff.ID,
			RoomID:          room.ID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			EndTime:         end,
			DurationMinutes: service.DurationMinutes,
			Status:          uc.cfg.InitialStatus,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 3.5. Запись истории nil -> начальный статус
		_, err = uc.historyRepo.Append(txCtx, &domain.BookingHistoryEntry{
			BookingID: created.ID,
			ToStatus:  created.Status,
			ChangedBy: &req.CustomerID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to append history for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to append history: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if txmanager.IsRetryable(err) {
		uc.logger.Warn("CreateBooking: resources are locked by a concurrent booking: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrResourceLocked, err)
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) loadError(what string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("CreateBooking: %s id=%d not found", what, id)
		return err
	}
	if txmanager.IsRetryable(err) {
		return err
	}
	uc.logger.Error("CreateBooking: failed to get %s id=%d: %v", what, id, err)
	return fmt.Errorf("%w: failed to get %s: %w", ErrInternal, what, err)
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrIncompatibleResource):
		return metrics.OutcomeIncompatible
	case errors.Is(err, domain.ErrRoomUnavailable), errors.Is(err, domain.ErrStaffUnavailable):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrStaffNotScheduled):
		return metrics.OutcomeNotScheduled
	case errors.Is(err, domain.ErrResourceLocked):
		return metrics.OutcomeLocked
	default:
		return metrics.OutcomeInternalError
	}
}
