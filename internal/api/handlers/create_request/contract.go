package create_request

import (
	"context"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/internal/service/requests/models"
)

type RequestService interface {
	Create(ctx context.Context, role domain.Role, req *models.CreateRequest) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
