// README: Distance provider contract, error classes, and service-area bounds.
package maps

import (
	"context"
	"errors"

	"hail/internal/config"
	"hail/internal/types"
)

var (
	// ErrOutsideServiceArea means the request shape was fine but at least
	// one endpoint is not serviceable (or no driving route exists).
	ErrOutsideServiceArea = errors.New("location outside service area")
	// ErrProviderUnavailable is a transient routing failure; callers may
	// retry the whole request.
	ErrProviderUnavailable = errors.New("distance provider unavailable")
)

// Provider returns the driving distance in meters between two points.
type Provider interface {
	Distance(ctx context.Context, from, to types.Point) (int64, error)
}

// Area is the operator's serviceable bounding box.
type Area struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

func NewArea(cfg config.AreaConfig) Area {
	return Area{
		minLat: cfg.MinLat, maxLat: cfg.MaxLat,
		minLng: cfg.MinLng, maxLng: cfg.MaxLng,
	}
}

func (a Area) Contains(p types.Point) bool {
	return p.Lat >= a.minLat && p.Lat <= a.maxLat &&
		p.Lng >= a.minLng && p.Lng <= a.maxLng
}
