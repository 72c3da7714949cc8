package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// Service сервис для работы с бронированиями: чтение, смена статуса, отмена и журнал
type Service struct {
	bookingRepo BookingRepository
	historyRepo HistoryRepository
	txManager   TransactionManager
	cache       AvailabilityCache
	notifier    EventNotifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	notifier EventNotifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("GetByID", id, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичному идентификатору
func (s *Service) GetByReference(ctx context.Context, reference uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, s.repoError("GetByReference", 0, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает бронирования клиента
// Опционально фильтрует по статусу и периоду
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCustomerBookings: invalid filter for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByCustomer(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetHistory получает журнал статусов бронирования
func (s *Service) GetHistory(ctx context.Context, bookingID int64) (*models.HistoryResponse, error) {
	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		return nil, s.repoError("GetHistory", bookingID, err)
	}

	entries, err := s.historyRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetHistory: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(bookingID, entries), nil
}

// UpdateStatus переводит бронирование в новый статус по жизненному циклу
// Смена статуса и запись в журнал выполняются в одной транзакции
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by actor=%d", bookingID, req.Status, req.ActorID)

	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	return s.transition(ctx, "UpdateStatus", bookingID, next, req.ActorID, req.Reason)
}

// Cancel отменяет бронирование с указанием причины
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, req.ActorID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	resp, err := s.transition(ctx, "Cancel", bookingID, domain.StatusCancelled, req.ActorID, req.CancellationReason)
	if errors.Is(err, domain.ErrInvalidTransition) {
		return nil, ErrCannotCancel
	}
	return resp, err
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	bookingID int64,
	next domain.BookingStatus,
	actorID int64,
	reason *string,
) (*models.BookingResponse, error) {
	var (
		updated *domain.Booking
		from    domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetForUpdate(txCtx, bookingID)
		if err != nil {
			return s.repoError(op, bookingID, err)
		}

		if !booking.CanTransitionTo(next) {
			s.logger.Warn("%s: booking id=%d cannot move from %s to %s", op, bookingID, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, next)
		}

		if next == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(txCtx, bookingID, reason)
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, next)
		}
		if err != nil {
			return s.repoError(op, bookingID, err)
		}

		from = booking.Status
		_, err = s.historyRepo.Append(txCtx, &domain.BookingHistoryEntry{
			BookingID:  bookingID,
			FromStatus: &from,
			ToStatus:   next,
			ChangedBy:  actorIDPtr(actorID),
			Reason:     reason,
		})
		if err != nil {
			s.logger.Error("%s: failed to append history for booking id=%d: %v", op, bookingID, err)
			return fmt.Errorf("%w: %s - append history: %v", ErrInternal, op, err)
		}

		updated, err = s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return s.repoError(op, bookingID, err)
		}
		return nil
	})
	if txmanager.IsRetryable(err) {
		s.logger.Warn("%s: booking id=%d is locked by a concurrent change: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrResourceLocked, err)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%d moved from %s to %s", op, bookingID, from, next)

	s.cache.Invalidate(ctx, updated.BookingDate)
	s.notifier.StatusChanged(ctx, updated, from, actorIDPtr(actorID), reason)

	return models.FromDomainBooking(updated), nil
}

// repoError приводит ошибку репозитория к ошибке сервиса
func (s *Service) repoError(op string, bookingID int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
		return ErrBookingNotFound
	}
	if txmanager.IsRetryable(err) {
		return err
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func actorIDPtr(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
