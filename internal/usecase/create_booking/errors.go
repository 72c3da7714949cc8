package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = fmt.Errorf("%w: create_booking: booking date is in the past", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advance_booking_days
	ErrDateTooFarInFuture = fmt.Errorf("%w: create_booking: date is too far in the future", domain.ErrValidation)

	// ErrOutsideBusinessHours возвращается, когда процедура не помещается в часы работы
	ErrOutsideBusinessHours = fmt.Errorf("%w: create_booking: outside business hours", domain.ErrValidation)

	// ErrTooLateToBook возвращается, когда нарушено min_notice_minutes
	ErrTooLateToBook = fmt.Errorf("%w: create_booking: too late to book this slot", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking", domain.ErrInternal)
)
