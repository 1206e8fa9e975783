package models

import (
	"time"

	"github.com/m04kA/QA-MatchingService/internal/domain"
)

// Request модели

// CreateRequest запрос на создание заявки
type CreateRequest struct {
	CustomerID  int64   `json:"customerId"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Response модели

// RequestResponse ответ с данными заявки
type RequestResponse struct {
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

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []*RequestResponse `json:"requests"`
}

// FromDomainRequest конвертирует доменную заявку в response
func FromDomainRequest(req *domain.ServiceRequest) *RequestResponse {
	return &RequestResponse{
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

// FromDomainRequestList конвертирует список доменных заявок в response
func FromDomainRequestList(requests []*domain.ServiceRequest) *RequestListResponse {
	out := make([]*RequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, FromDomainRequest(req))
	}
	return &RequestListResponse{Requests: out}
}
