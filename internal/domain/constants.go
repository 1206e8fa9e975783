package domain

// Default matching parameters
const (
	// DefaultSearchRadiusKM радиус поиска заявок вокруг исполнителя
	DefaultSearchRadiusKM = 20.0

	// DefaultMaxRequestAgeMinutes максимальный возраст заявки в выдаче поиска
	DefaultMaxRequestAgeMinutes = 30
)

// Coordinate validation bounds
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ValidCoordinates проверяет, что координаты лежат в допустимых пределах
func ValidCoordinates(lat, lon float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lon >= MinLongitude && lon <= MaxLongitude
}

// TerminalStatuses список терминальных статусов заявки
var TerminalStatuses = []RequestStatus{
	StatusCompleted,
	StatusCancelled,
}

// AllStatuses полный список статусов заявки
var AllStatuses = []RequestStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}
