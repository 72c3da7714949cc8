package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	validateBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// ValidateRequest HTTP request model
// endTime или serviceId: без endTime конец вычисляется по длительности услуги
type ValidateRequest struct {
	Date             string  `json:"date" validate:"required,date"`
	StartTime        string  `json:"startTime" validate:"required,hhmm"`
	EndTime          *string `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	ServiceID        *int64  `json:"serviceId,omitempty" validate:"omitempty,gt=0"`
	RoomID           int64   `json:"roomId" validate:"required,gt=0"`
	StaffID          int64   `json:"staffId" validate:"required,gt=0"`
	ExcludeBookingID *int64  `json:"excludeBookingId,omitempty" validate:"omitempty,gt=0"`
}

// ValidateResponse HTTP response model
type ValidateResponse struct {
	IsValid        bool       `json:"isValid"`
	Compatible     bool       `json:"compatible"`
	FailedRule     string     `json:"failedRule,omitempty"`
	StaffQualified bool       `json:"staffQualified"`
	RoomAvailable  bool       `json:"roomAvailable"`
	StaffAvailable bool       `json:"staffAvailable"`
	StaffScheduled bool       `json:"staffScheduled"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	Conflicts      []Conflict `json:"conflicts"`
}

// Conflict пересекающееся бронирование
type Conflict struct {
	BookingID int64  `json:"bookingId"`
	Type      string `json:"type"`
	RoomID    int64  `json:"roomId"`
	StaffID   int64  `json:"staffId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &validateBooking.Request{
		Date:             date,
		StartTime:        start,
		ServiceID:        r.ServiceID,
		RoomID:           r.RoomID,
		StaffID:          r.StaffID,
		ExcludeBookingID: r.ExcludeBookingID,
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateResponse {
	conflicts := make([]Conflict, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = Conflict{
			BookingID: c.BookingID,
			Type:      c.Type,
			RoomID:    c.RoomID,
			StaffID:   c.StaffID,
			StartTime: c.StartTime.String(),
			EndTime:   c.EndTime.String(),
			Status:    c.Status,
		}
	}

	return &ValidateResponse{
		IsValid:        resp.IsValid,
		Compatible:     resp.Compatible,
		FailedRule:     resp.FailedRule,
		StaffQualified: resp.StaffQualified,
		RoomAvailable:  resp.RoomAvailable,
		StaffAvailable: resp.StaffAvailable,
		StaffScheduled: resp.StaffScheduled,
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Conflicts:      conflicts,
	}
}
