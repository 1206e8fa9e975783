package find_nearby

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль исполнителя не найден
	ErrProviderNotFound = errors.New("find_nearby: provider profile not found")

	// ErrNotVerified возвращается, когда аккаунт исполнителя не верифицирован
	ErrNotVerified = errors.New("find_nearby: provider account is not verified")

	// ErrNotAvailable возвращается, когда исполнитель не отмечен как доступный
	ErrNotAvailable = errors.New("find_nearby: provider is not marked as available")

	// ErrNoLocation возвращается, когда у исполнителя не установлены координаты
	ErrNoLocation = errors.New("find_nearby: provider location is not set")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_nearby: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_nearby: internal error")
)
