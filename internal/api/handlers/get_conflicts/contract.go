package get_conflicts

import (
	"context"

	getConflicts "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_conflicts"
)

type GetConflictsUseCase interface {
	Execute(ctx context.Context, req *getConflicts.Request) (*getConflicts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
