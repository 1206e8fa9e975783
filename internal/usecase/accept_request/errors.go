package accept_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: service request not found")

	// ErrAlreadyAccepted возвращается проигравшему гонку за заявку.
	// Это ожидаемый исход, а не сбой: вызывающему следует обновить список заявок.
	ErrAlreadyAccepted = errors.New("accept_request: service request has already been accepted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_request: internal error")
)
