package validate_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/validate
// Отрицательный результат проверки возвращается с кодом 200 и isValid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if fields := handlers.ValidateStruct(&req); fields != nil {
		h.logger.Warn("POST /availability/validate - Validation failed: fields=%v", fields)
		handlers.RespondValidationError(w, msgInvalidRequestBody, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.StatusFor(err) == http.StatusInternalServerError {
			h.logger.Error("POST /availability/validate - Failed to validate: room_id=%d, staff_id=%d, error=%v",
				req.RoomID, req.StaffID, err)
		} else {
			h.logger.Warn("POST /availability/validate - Request rejected: room_id=%d, staff_id=%d, error=%v",
				req.RoomID, req.StaffID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /availability/validate - Checked: room_id=%d, staff_id=%d, date=%s, valid=%t, conflicts=%d",
		req.RoomID, req.StaffID, req.Date, result.IsValid, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
