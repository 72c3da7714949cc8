package get_availability_summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// DefaultDays число дней сводки, если не указано
const DefaultDays = 7

// UseCase use case сводки доступности по диапазону дат
type UseCase struct {
	provider     SummaryProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(provider SummaryProvider, logger Logger) *UseCase {
	return &UseCase{
		provider:     provider,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает количество слотов, занятых и свободных мест по дням
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	start := req.StartDate
	if start.IsZero() {
		start = uc.timeProvider.Now()
	}
	start = domain.DateOnly(start)

	days := req.Days
	if days == 0 {
		days = DefaultDays
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailabilitySummary: start=%s, days=%d", start.Format(domain.DateFormat), days)

	summaries, err := uc.provider.SummarizeRange(ctx, start, days)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("GetAvailabilitySummary: validation failed: %v", err)
			return nil, err
		}
		uc.logger.Error("GetAvailabilitySummary: failed to summarize: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{StartDate: start, Days: make([]Day, 0, len(summaries))}
	for _, s := range summaries {
		resp.Days = append(resp.Days, Day{
			Date:            s.Date,
			TotalSlots:      s.TotalSlots,
			BookedSlots:     s.BookedSlots,
			AvailableSlots:  s.AvailableSlots,
			HasAvailability: s.HasAvailability,
		})
	}
	return resp, nil
}
