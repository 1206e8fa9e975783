package domain

import "time"

// ProviderProfile снимок профиля исполнителя.
// Профиль принадлежит внешнему сервису пользователей; matching читает его
// как read model и пишет только координаты (через tracking endpoint).
type ProviderProfile struct {
	UserID      int64
	IsVerified  bool
	IsAvailable bool

	// Последние известные координаты; nil, пока исполнитель не отправил позицию
	Latitude  *float64
	Longitude *float64

	// Радиус обслуживания в километрах
	ServiceRadiusKM float64

	UpdatedAt time.Time
}

// HasLocation возвращает true, если у исполнителя установлены координаты
func (p *ProviderProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
