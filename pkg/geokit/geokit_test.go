package geokit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lonOffsetKM возвращает смещение долготы в градусах, соответствующее
// дуге distanceKM вдоль параллели lat.
func lonOffsetKM(lat, distanceKM float64) float64 {
	return (distanceKM / earthRadiusKM) * (180.0 / math.Pi) / math.Cos(lat*math.Pi/180.0)
}

func TestHaversineKM_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKM(55.7558, 37.6173, 55.7558, 37.6173))
}

func TestHaversineKM_KnownDistances(t *testing.T) {
	tests := []struct {
		name        string
		lat1, lon1  float64
		lat2, lon2  float64
		expectedKM  float64
		toleranceKM float64
	}{
		{
			name: "Москва - Санкт-Петербург",
			lat1: 55.7558, lon1: 37.6173,
			lat2: 59.9343, lon2: 30.3351,
			expectedKM:  634,
			toleranceKM: 5,
		},
		{
			name: "один градус широты на экваторе",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			expectedKM:  111.19,
			toleranceKM: 0.1,
		},
		{
			name: "антиподы",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			expectedKM:  math.Pi * earthRadiusKM,
			toleranceKM: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expectedKM, got, tt.toleranceKM)
		})
	}
}

func TestHaversineKM_Symmetric(t *testing.T) {
	d1 := HaversineKM(55.7558, 37.6173, 59.9343, 30.3351)
	d2 := HaversineKM(59.9343, 30.3351, 55.7558, 37.6173)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestHaversineKM_BoundaryRadius(t *testing.T) {
	const radiusKM = 20.0
	lat, lon := 55.7558, 37.6173

	// Точка на дуге чуть короче радиуса попадает, чуть длиннее - нет
	inside := lon + lonOffsetKM(lat, radiusKM-0.01)
	outside := lon + lonOffsetKM(lat, radiusKM+0.01)

	assert.LessOrEqual(t, HaversineKM(lat, lon, lat, inside), radiusKM)
	assert.Greater(t, HaversineKM(lat, lon, lat, outside), radiusKM)
}

func TestBoxAround_ContainsCenter(t *testing.T) {
	box := BoxAround(55.7558, 37.6173, 20)
	assert.True(t, box.Contains(55.7558, 37.6173))
}

func TestBoxAround_NeverExcludesPointsInRadius(t *testing.T) {
	// Свойство корректности префильтра: рамка может включать лишние точки,
	// но никогда не отбрасывает точку внутри радиуса.
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		centerLat := rng.Float64()*150 - 75 // |lat| <= 75
		centerLon := rng.Float64()*360 - 180
		radiusKM := rng.Float64()*49 + 1 // 1..50 км

		box := BoxAround(centerLat, centerLon, radiusKM)

		// Случайная точка внутри радиуса
		bearing := rng.Float64() * 2 * math.Pi
		distanceKM := rng.Float64() * radiusKM
		angular := distanceKM / earthRadiusKM

		lat1 := centerLat * math.Pi / 180
		lon1 := centerLon * math.Pi / 180
		lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
			math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
		lon2 := lon1 + math.Atan2(
			math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
			math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
		)

		pointLat := lat2 * 180 / math.Pi
		pointLon := lon2 * 180 / math.Pi
		if pointLon > 180 {
			pointLon -= 360
		}
		if pointLon < -180 {
			pointLon += 360
		}
		// Точки через антимеридиан рамка не обязана покрывать одним интервалом
		if math.Abs(pointLon-centerLon) > 180 {
			continue
		}

		require.LessOrEqual(t, HaversineKM(centerLat, centerLon, pointLat, pointLon), radiusKM+1e-9)
		assert.True(t, box.Contains(pointLat, pointLon),
			"center=(%f,%f) r=%f point=(%f,%f) d=%f box=%+v",
			centerLat, centerLon, radiusKM, pointLat, pointLon,
			HaversineKM(centerLat, centerLon, pointLat, pointLon), box)
	}
}

func TestBoxAround_ClampsAtPoles(t *testing.T) {
	box := BoxAround(89.9, 0, 20)

	assert.False(t, math.IsNaN(box.MinLat))
	assert.False(t, math.IsNaN(box.MaxLat))
	assert.False(t, math.IsNaN(box.MinLon))
	assert.False(t, math.IsNaN(box.MaxLon))

	assert.LessOrEqual(t, box.MaxLat, 90.0)
	assert.GreaterOrEqual(t, box.MinLat, -90.0)
	assert.LessOrEqual(t, box.MaxLon-box.MinLon, 360.0)
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoundingBox{MinLat: 50, MaxLat: 60, MinLon: 30, MaxLon: 40}

	assert.True(t, box.Contains(55, 35))
	assert.True(t, box.Contains(50, 30)) // границы включительно
	assert.True(t, box.Contains(60, 40))
	assert.False(t, box.Contains(49.999, 35))
	assert.False(t, box.Contains(55, 40.001))
}
