package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil || req.StartTime.IsZero() {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	return nil
}

func validateDate(date, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if advanceBookingDays > 0 && domain.DateOnly(date).After(domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, advanceBookingDays)
	}
	return nil
}

func validateTime(cfg Config, date time.Time, start, end types.TimeString, now time.Time) error {
	if !cfg.OpenTime.IsZero() && start.IsBefore(cfg.OpenTime) {
		return fmt.Errorf("%w: opens at %s", ErrInvalidTime, cfg.OpenTime)
	}
	if !cfg.CloseTime.IsZero() && end.IsAfter(cfg.CloseTime) {
		return fmt.Errorf("%w: closes at %s", ErrInvalidTime, cfg.CloseTime)
	}
	if !domain.IsSameDay(date, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cfg.MinNoticeMinutes)
	if err != nil || start.IsBefore(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrInvalidTime, cfg.MinNoticeMinutes)
	}
	return nil
}
