package find_nearby

import (
	"context"
	"time"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/pkg/geokit"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	FindPendingInBox(ctx context.Context, box geokit.BoundingBox, since time.Time) ([]*domain.ServiceRequest, error)
}

// ProviderRepository интерфейс репозитория профилей исполнителей
type ProviderRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
