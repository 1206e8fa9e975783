package requests

import (
	"context"

	"github.com/m04kA/QA-MatchingService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	GetByCustomer(ctx context.Context, customerID int64) ([]*domain.ServiceRequest, error)
	GetByProvider(ctx context.Context, providerID int64) ([]*domain.ServiceRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
