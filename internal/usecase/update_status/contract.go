package update_status

import (
	"context"
	"time"

	"github.com/m04kA/QA-MatchingService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (time.Time, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс шлюза уведомлений
type Notifier interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
