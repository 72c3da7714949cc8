package get_availability_summary

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	getSummary "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_availability_summary"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays = "некорректное количество дней"
)

type Handler struct {
	useCase GetAvailabilitySummaryUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilitySummaryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/summary
// Query params: startDate (YYYY-MM-DD, по умолчанию сегодня), days (по умолчанию 7)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /availability/summary - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	days, err := handlers.QueryInt(r, "days")
	if err != nil {
		h.logger.Warn("GET /availability/summary - Invalid days: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDays)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSummary.Request{StartDate: startDate, Days: days})
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("GET /availability/summary - Failed to build summary: error=%v", err)
		} else {
			h.logger.Warn("GET /availability/summary - Request rejected: error=%v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/summary - Summary retrieved: start=%s, days=%d", response.StartDate, len(response.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
