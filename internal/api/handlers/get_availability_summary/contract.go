package get_availability_summary

import (
	"context"

	getSummary "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_availability_summary"
)

type GetAvailabilitySummaryUseCase interface {
	Execute(ctx context.Context, req *getSummary.Request) (*getSummary.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
