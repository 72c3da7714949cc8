package get_availability_summary

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	getSummary "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_availability_summary"
)

// SummaryResponse HTTP response model
type SummaryResponse struct {
	StartDate string       `json:"startDate"`
	Days      []DaySummary `json:"days"`
}

// DaySummary сводка одного дня
type DaySummary struct {
	Date            string `json:"date"`
	TotalSlots      int    `json:"totalSlots"`
	BookedSlots     int    `json:"bookedSlots"`
	AvailableSlots  int    `json:"availableSlots"`
	HasAvailability bool   `json:"hasAvailability"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSummary.Response) *SummaryResponse {
	days := make([]DaySummary, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DaySummary{
			Date:            d.Date.Format(domain.DateFormat),
			TotalSlots:      d.TotalSlots,
			BookedSlots:     d.BookedSlots,
			AvailableSlots:  d.AvailableSlots,
			HasAvailability: d.HasAvailability,
		}
	}
	return &SummaryResponse{
		StartDate: resp.StartDate.Format(domain.DateFormat),
		Days:      days,
	}
}
