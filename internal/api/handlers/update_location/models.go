package update_location

// UpdateLocationRequest тело запроса обновления позиции исполнителя
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateLocationResponse подтверждение сохранения позиции
type UpdateLocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
