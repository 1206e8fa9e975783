package find_nearby

import "time"

// Request модель запроса поиска ближайших заявок
type Request struct {
	ProviderID int64 // ID исполнителя, от имени которого выполняется поиск
}

// Response модель ответа со списком заявок, отсортированных по расстоянию
type Response struct {
	Requests []NearbyRequest
}

// NearbyRequest заявка с расстоянием до исполнителя
type NearbyRequest struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	ServiceName string
	Status      string
	Latitude    float64
	Longitude   float64
	DistanceKM  float64
	CreatedAt   time.Time
}
