package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reschedule_booking: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается, когда новая дата в прошлом или слишком далеко
	ErrInvalidDate = fmt.Errorf("%w: reschedule_booking: invalid booking date", domain.ErrValidation)

	// ErrInvalidTime возвращается, когда новое время вне часов работы или нарушает min_notice_minutes
	ErrInvalidTime = fmt.Errorf("%w: reschedule_booking: invalid booking time", domain.ErrValidation)

	// ErrCannotReschedule возвращается, когда визит уже начался или завершен
	ErrCannotReschedule = fmt.Errorf("%w: reschedule_booking: booking cannot be rescheduled", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: reschedule_booking", domain.ErrInternal)
)
