package list_nearby_requests

import (
	"context"

	"github.com/m04kA/QA-MatchingService/internal/usecase/find_nearby"
)

type FindNearbyUseCase interface {
	Execute(ctx context.Context, req *find_nearby.Request) (*find_nearby.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
