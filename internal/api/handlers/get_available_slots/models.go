package get_available_slots

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID *int64          `json:"serviceId,omitempty"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	AvailableStaffCount int    `json:"availableStaffCount"`
	AvailableRoomCount  int    `json:"availableRoomCount"`
	IsAvailable         bool   `json:"isAvailable"`
	SuggestedStaffID    *int64 `json:"suggestedStaffId,omitempty"`
	SuggestedRoomID     *int64 `json:"suggestedRoomId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:           slot.StartTime.String(),
			EndTime:             slot.EndTime.String(),
			AvailableStaffCount: slot.AvailableStaffCount,
			AvailableRoomCount:  slot.AvailableRoomCount,
			IsAvailable:         slot.IsAvailable,
			SuggestedStaffID:    slot.SuggestedStaffID,
			SuggestedRoomID:     slot.SuggestedRoomID,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
