package list_nearby_requests

import (
	"time"

	"github.com/m04kA/QA-MatchingService/internal/usecase/find_nearby"
)

// NearbyRequestResponse заявка в выдаче поиска
type NearbyRequestResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	Status      string    `json:"status"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	DistanceKM  float64   `json:"distanceKm"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListResponse ответ со списком заявок, отсортированных по расстоянию
type ListResponse struct {
	Requests []NearbyRequestResponse `json:"requests"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *find_nearby.Response) *ListResponse {
	out := make([]NearbyRequestResponse, 0, len(resp.Requests))
	for _, req := range resp.Requests {
		out = append(out, NearbyRequestResponse{
			ID:          req.ID,
			CustomerID:  req.CustomerID,
			ServiceID:   req.ServiceID,
			ServiceName: req.ServiceName,
			Status:      req.Status,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			DistanceKM:  req.DistanceKM,
			CreatedAt:   req.CreatedAt,
		})
	}
	return &ListResponse{Requests: out}
}
