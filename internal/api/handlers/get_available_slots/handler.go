package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStaffIDs  = "некорректный список мастеров"
	msgInvalidRoomIDs   = "некорректный список комнат"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: date (required, YYYY-MM-DD), serviceId, staffIds, roomIds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("date") == "" {
		h.logger.Warn("GET /availability/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffIDs, err := handlers.QueryInt64List(r, "staffIds")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid staff IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffIDs)
		return
	}

	roomIDs, err := handlers.QueryInt64List(r, "roomIds")
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid room IDs: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:      date,
		ServiceID: serviceID,
		StaffIDs:  staffIDs,
		RoomIDs:   roomIDs,
	})
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("GET /availability/slots - Failed to get slots: date=%s, error=%v", r.URL.Query().Get("date"), err)
		} else {
			h.logger.Warn("GET /availability/slots - Request rejected: date=%s, error=%v", r.URL.Query().Get("date"), err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/slots - Slots retrieved successfully: date=%s, slots_count=%d",
		response.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
