package update_status

// UpdateStatusRequest тело запроса на переход статуса заявки
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
