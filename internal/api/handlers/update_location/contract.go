package update_location

import (
	"context"

	locationUC "github.com/m04kA/QA-MatchingService/internal/usecase/update_location"
)

type UpdateLocationUseCase interface {
	Execute(ctx context.Context, req *locationUC.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
