package update_location

import "context"

// ProviderRepository интерфейс репозитория профилей исполнителей
type ProviderRepository interface {
	UpdateLocation(ctx context.Context, userID int64, lat, lon float64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
