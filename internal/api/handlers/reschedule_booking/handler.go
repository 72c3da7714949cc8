package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgCannotReschedule    = "бронирование в текущем статусе нельзя перенести"
	msgInvalidBookingDate  = "некорректная дата переноса"
	msgInvalidBookingStart = "некорректное время переноса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/schedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if fields := handlers.ValidateStruct(&req); fields != nil {
		h.logger.Warn("PUT /bookings/{id}/schedule - Validation failed: booking_id=%d, fields=%v", bookingID, fields)
		handlers.RespondValidationError(w, msgInvalidRequestBody, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PUT /bookings/{id}/schedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PUT /bookings/{id}/schedule - Invalid date: booking_id=%d, date=%s", bookingID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrInvalidTime):
			h.logger.Warn("PUT /bookings/{id}/schedule - Invalid time: booking_id=%d, start=%s", bookingID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidBookingStart)

		case handlers.StatusFor(err) == http.StatusInternalServerError:
			h.logger.Error("PUT /bookings/{id}/schedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)

		default:
			h.logger.Warn("PUT /bookings/{id}/schedule - Reschedule rejected: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/schedule - Booking rescheduled: booking_id=%d, %s %s -> %s %s",
		bookingID, result.PreviousDate.Format(domain.DateFormat), result.PreviousTime,
		result.Booking.BookingDate.Format(domain.DateFormat), result.Booking.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
