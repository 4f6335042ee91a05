// README: Offline distance provider estimating road distance from great-circle distance.
package maps

import (
	"context"
	"math"

	"hail/internal/types"
)

// roadFactor inflates great-circle distance to approximate urban driving
// distance. Calibrated loosely against Hong Kong trips.
const roadFactor = 1.4

// StaticService estimates driving distances without any network calls.
// Used when no maps API key is configured, and in tests.
type StaticService struct {
	area Area
}

func NewStaticService(area Area) *StaticService {
	return &StaticService{area: area}
}

func (s *StaticService) Distance(_ context.Context, from, to types.Point) (int64, error) {
	if !s.area.Contains(from) || !s.area.Contains(to) {
		return 0, ErrOutsideServiceArea
	}
	return int64(math.Round(haversineMeters(from, to) * roadFactor)), nil
}

const earthRadiusM = 6371000.0

// haversineMeters returns the great-circle distance in meters between two
// points specified in decimal degrees.
func haversineMeters(a, b types.Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	rLat1 := radians(a.Lat)
	rLat2 := radians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
