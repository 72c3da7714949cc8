package get_conflicts

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	getConflicts "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_conflicts"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

const (
	msgMissingParams = "параметры date, startTime и endTime обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime   = "некорректный формат времени, ожидается HH:MM"
	msgInvalidID     = "некорректный ID ресурса"
)

type Handler struct {
	useCase GetConflictsUseCase
	logger  Logger
}

func NewHandler(useCase GetConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/conflicts
// Query params: date, startTime, endTime (required), roomId, staffId, excludeBookingId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateStr, startStr, endStr := q.Get("date"), q.Get("startTime"), q.Get("endTime")
	if dateStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /availability/conflicts - Missing required params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/conflicts - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	req := &getConflicts.Request{Date: date, StartTime: start, EndTime: end}
	for name, dst := range map[string]**int64{
		"roomId":           &req.RoomID,
		"staffId":          &req.StaffID,
		"excludeBookingId": &req.ExcludeBookingID,
	} {
		v, err := handlers.QueryInt64(r, name)
		if err != nil {
			h.logger.Warn("GET /availability/conflicts - Invalid %s: %v", name, err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		*dst = v
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("GET /availability/conflicts - Failed to list conflicts: error=%v", err)
		} else {
			h.logger.Warn("GET /availability/conflicts - Request rejected: error=%v", err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /availability/conflicts - Conflicts listed: date=%s, %s-%s, count=%d",
		dateStr, start, end, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(req, dateStr, result))
}
