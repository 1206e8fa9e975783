package list_requests

import (
	"context"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/internal/service/requests/models"
)

type RequestService interface {
	ListForUser(ctx context.Context, userID int64, role domain.Role) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
