package domain

import "time"

// RequestStatus статус заявки на услугу
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusAccepted   RequestStatus = "ACCEPTED"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

// Role роль пользователя в системе.
// Роли выдаются внешним сервисом аутентификации и приходят в запросе.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
)

// ServiceRequest заявка клиента на выездную услугу - центральная сущность сервиса
type ServiceRequest struct {
	ID         int64
	CustomerID int64
	ProviderID *int64 // nil, пока заявка не принята исполнителем
	ServiceID  int64
	Status     RequestStatus

	// Denormalized data for history
	ServiceName string

	// Координаты места оказания услуги
	Latitude  float64
	Longitude float64

	// Итоговая цена, устанавливается после завершения работ
	FinalPrice *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal возвращает true, если заявка в терминальном статусе
// и дальнейшие переходы невозможны
func (r *ServiceRequest) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCancelled
}

// IsParty возвращает true, если пользователь является стороной заявки -
// её заказчиком или назначенным исполнителем
func (r *ServiceRequest) IsParty(userID int64) bool {
	if r.CustomerID == userID {
		return true
	}
	return r.ProviderID != nil && *r.ProviderID == userID
}

// HasProvider возвращает true, если заявке назначен исполнитель
func (r *ServiceRequest) HasProvider() bool {
	return r.ProviderID != nil
}

// ToRequestStatus конвертирует строку в RequestStatus
func ToRequestStatus(s string) (RequestStatus, bool) {
	switch RequestStatus(s) {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return RequestStatus(s), true
	}
	return "", false
}

// ToRole конвертирует строку в Role
func ToRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleProvider:
		return Role(s), true
	}
	return "", false
}
