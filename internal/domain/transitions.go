package domain

// transitionMap каноническая таблица переходов статусов по ролям.
// Переход PENDING -> ACCEPTED намеренно отсутствует: он выполняется только
// арбитром принятия заявки (usecase accept_request) под блокировкой строки.
var transitionMap = map[Role]map[RequestStatus][]RequestStatus{
	RoleProvider: {
		StatusAccepted:   {StatusInProgress},
		StatusInProgress: {StatusCompleted},
	},
	RoleCustomer: {
		StatusPending:  {StatusCancelled},
		StatusAccepted: {StatusCancelled},
	},
}

// AllowedTransition проверяет, разрешен ли роли переход заявки
// из статуса from в статус to
func AllowedTransition(role Role, from, to RequestStatus) bool {
	byStatus, ok := transitionMap[role]
	if !ok {
		return false
	}
	targets, ok := byStatus[from]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}
