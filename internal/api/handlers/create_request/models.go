package create_request

import (
	"github.com/m04kA/QA-MatchingService/internal/service/requests/models"
)

// CreateRequestBody HTTP request model
type CreateRequestBody struct {
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (b *CreateRequestBody) ToServiceRequest(customerID int64) *models.CreateRequest {
	return &models.CreateRequest{
		CustomerID:  customerID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
	}
}
