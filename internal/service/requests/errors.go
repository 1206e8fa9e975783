package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("requests service: service request not found")

	// ErrAccessDenied возвращается, когда пользователь не является стороной заявки
	ErrAccessDenied = errors.New("requests service: access denied")

	// ErrRoleNotAllowed возвращается, когда операция недоступна для роли пользователя
	ErrRoleNotAllowed = errors.New("requests service: operation is not allowed for this role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("requests service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("requests service: internal error")
)
