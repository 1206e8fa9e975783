package pusher

import "fmt"

// Event names
const (
	EventStatusUpdate    = "status-update"
	EventRequestAccepted = "request-accepted"
)

// RequestChannel канал событий конкретной заявки
func RequestChannel(requestID int64) string {
	return fmt.Sprintf("request-%d", requestID)
}

// UserChannel персональный канал пользователя
func UserChannel(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}
