package update_location

import "errors"

var (
	// ErrProviderNotFound возвращается, когда профиль исполнителя не найден
	ErrProviderNotFound = errors.New("update_location: provider profile not found")

	// ErrInvalidCoordinates возвращается при координатах вне допустимых пределов
	ErrInvalidCoordinates = errors.New("update_location: coordinates are out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_location: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_location: internal error")
)
