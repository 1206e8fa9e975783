package update_status

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("update_status: service request not found")

	// ErrAccessDenied возвращается, когда пользователь не является стороной заявки
	// или его роль не соответствует его отношению к заявке
	ErrAccessDenied = errors.New("update_status: user is not a party to this request")

	// ErrInvalidTransition возвращается, когда запрошенный переход статуса
	// недопустим из текущего состояния для роли пользователя
	ErrInvalidTransition = errors.New("update_status: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
