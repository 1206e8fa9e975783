package accept_request

import (
	"time"

	"github.com/m04kA/QA-MatchingService/internal/domain"
)

// Request модель запроса принятия заявки
type Request struct {
	RequestID  int64 // ID принимаемой заявки
	ProviderID int64 // ID исполнителя, принимающего заявку
}

// Response полное представление заявки после принятия.
// Этот же объект уходит заказчику в payload события request-accepted.
type Response struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ProviderID  *int64    `json:"providerId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Status      string    `json:"status"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	FinalPrice  *float64  `json:"finalPrice,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// fromDomain конвертирует доменную заявку в response
func fromDomain(req *domain.ServiceRequest) *Response {
	return &Response{
		ID:          req.ID,
		CustomerID:  req.CustomerID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Status:      string(req.Status),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		FinalPrice:  req.FinalPrice,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}
