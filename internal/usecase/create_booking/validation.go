package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays
func validateDate(bookingDate, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if domain.DateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет часы работы и minNoticeMinutes для сегодняшней даты
func validateBookingTime(cfg Config, bookingDate time.Time, start, end types.TimeString, now time.Time) error {
	if !cfg.OpenTime.IsZero() && start.IsBefore(cfg.OpenTime) {
		return fmt.Errorf("%w: opens at %s", ErrOutsideBusinessHours, cfg.OpenTime)
	}
	if !cfg.CloseTime.IsZero() && end.IsAfter(cfg.CloseTime) {
		return fmt.Errorf("%w: closes at %s", ErrOutsideBusinessHours, cfg.CloseTime)
	}

	// Если дата бронирования не сегодня, проверка не нужна
	if !domain.IsSameDay(bookingDate, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cfg.MinNoticeMinutes)
	if err != nil {
		// Минимальное время переходит на следующий день
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, cfg.MinNoticeMinutes)
	}
	if start.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, cfg.MinNoticeMinutes)
	}

	return nil
}
