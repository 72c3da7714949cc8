package get_conflicts

import (
	getConflicts "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_conflicts"
)

// ConflictsResponse HTTP response model
type ConflictsResponse struct {
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Conflicts []Conflict `json:"conflicts"`
}

// Conflict пересекающееся бронирование
type Conflict struct {
	BookingID  int64  `json:"bookingId"`
	Type       string `json:"type"`
	CustomerID int64  `json:"customerId"`
	RoomID     int64  `json:"roomId"`
	StaffID    int64  `json:"staffId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *getConflicts.Request, date string, resp *getConflicts.Response) *ConflictsResponse {
	conflicts := make([]Conflict, len(resp.Conflicts))
	for i, c := range resp.Conflicts {
		conflicts[i] = Conflict{
			BookingID:  c.BookingID,
			Type:       c.Type,
			CustomerID: c.CustomerID,
			RoomID:     c.RoomID,
			StaffID:    c.StaffID,
			StartTime:  c.StartTime.String(),
			EndTime:    c.EndTime.String(),
			Status:     c.Status,
		}
	}

	return &ConflictsResponse{
		Date:      date,
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
		Conflicts: conflicts,
	}
}
