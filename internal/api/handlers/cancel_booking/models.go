package cancel_booking

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actorID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ActorID:            actorID,
		CancellationReason: r.CancellationReason,
	}
}
