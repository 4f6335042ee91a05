// README: Redis-backed memoization decorator for leg distances.
package maps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hail/internal/types"
)

// CachedProvider memoizes successful distance lookups in Redis. Cache
// errors are ignored; the wrapped provider remains the source of truth.
// Failures are never cached.
type CachedProvider struct {
	next  Provider
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedProvider(next Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, redis: rdb, ttl: ttl}
}

func (c *CachedProvider) Distance(ctx context.Context, from, to types.Point) (int64, error) {
	key := legKey(from, to)
	if v, err := c.redis.Get(ctx, key).Result(); err == nil {
		if meters, err := strconv.ParseInt(v, 10, 64); err == nil {
			return meters, nil
		}
	}

	meters, err := c.next.Distance(ctx, from, to)
	if err != nil {
		return 0, err
	}
	_ = c.redis.Set(ctx, key, strconv.FormatInt(meters, 10), c.ttl).Err()
	return meters, nil
}

// legKey rounds coordinates to ~11cm so equivalent requests share entries.
func legKey(from, to types.Point) string {
	return fmt.Sprintf("maps:leg:%.6f,%.6f:%.6f,%.6f", from.Lat, from.Lng, to.Lat, to.Lng)
}
