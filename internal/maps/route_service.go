// README: Google Maps-backed distance provider with bounded timeout and retries.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"hail/internal/config"
	"hail/internal/types"
)

// RouteService resolves driving distances through the Google Maps
// Distance Matrix API. Transient failures are retried up to MaxAttempts
// with a per-attempt timeout; unroutable pairs fail immediately with
// ErrOutsideServiceArea.
type RouteService struct {
	client      *maps.Client
	area        Area
	timeout     time.Duration
	maxAttempts int
}

func NewRouteService(cfg config.MapsConfig, area Area) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &RouteService{
		client:      client,
		area:        area,
		timeout:     cfg.Timeout,
		maxAttempts: attempts,
	}, nil
}

func (s *RouteService) Distance(ctx context.Context, from, to types.Point) (int64, error) {
	if !s.area.Contains(from) || !s.area.Contains(to) {
		return 0, ErrOutsideServiceArea
	}

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		meters, err := s.distanceOnce(ctx, from, to)
		if err == nil {
			return meters, nil
		}
		if err == ErrOutsideServiceArea {
			return 0, err
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

func (s *RouteService) distanceOnce(ctx context.Context, from, to types.Point) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{coord(from)},
		Destinations: []string{coord(to)},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		return 0, err
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrOutsideServiceArea
	}

	el := resp.Rows[0].Elements[0]
	switch el.Status {
	case "OK":
		return int64(el.Distance.Meters), nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return 0, ErrOutsideServiceArea
	default:
		return 0, fmt.Errorf("distance matrix status %s", el.Status)
	}
}

func coord(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
