package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// RescheduleRequest HTTP request model
// Без staffId и roomId бронирование остается за текущими мастером и комнатой
type RescheduleRequest struct {
	BookingDate string `json:"bookingDate" validate:"required,date"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	StaffID     *int64 `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	RoomID      *int64 `json:"roomId,omitempty" validate:"omitempty,gt=0"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking      *models.BookingResponse `json:"booking"`
	PreviousDate string                  `json:"previousDate"`
	PreviousTime string                  `json:"previousStartTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID, actorID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Date:      date,
		StartTime: start,
		StaffID:   r.StaffID,
		RoomID:    r.RoomID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Booking:      models.FromDomainBooking(resp.Booking),
		PreviousDate: resp.PreviousDate.Format(domain.DateFormat),
		PreviousTime: resp.PreviousTime.String(),
	}
}
