package geokit

import "math"

const (
	// earthRadiusKM средний радиус Земли в километрах
	earthRadiusKM = 6371.0

	// degreesPerKM примерное число километров в одном градусе широты.
	// Для долготы значение корректируется на косинус широты.
	degreesPerKM = 111.0

	// minCosLat нижняя граница |cos(lat)| при расчете bounding box.
	// Вблизи полюсов косинус стремится к нулю и дельта по долготе уходит
	// в бесконечность - ограничиваем знаменатель и ширину рамки.
	minCosLat = 1e-6
)

// BoundingBox прямоугольная рамка в градусах для грубой фильтрации кандидатов
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains проверяет попадание точки в рамку
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// BoxAround строит bounding box вокруг точки для радиуса radiusKM.
// Рамка может включать точки дальше радиуса (это нормально - точная проверка
// выполняется через HaversineKM), но никогда не исключает точки внутри радиуса.
// Известное ограничение: рамка не переносится через антимеридиан, поэтому у
// точек вблизи долготы +-180 кандидаты с другой стороны линии теряются.
func BoxAround(lat, lon, radiusKM float64) BoundingBox {
	latDelta := radiusKM / degreesPerKM

	cosLat := math.Abs(math.Cos(lat * math.Pi / 180))
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	lonDelta := radiusKM / (degreesPerKM * cosLat)
	if lonDelta > 180 {
		lonDelta = 180
	}

	box := BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}

	if box.MinLat < -90 {
		box.MinLat = -90
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
	}

	return box
}

// HaversineKM расстояние по дуге большого круга между двумя точками, в километрах
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
