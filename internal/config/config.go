// README: Config loader with env defaults for HTTP, DB, Redis, maps, and fare policy.
package config

import (
	"os"
	"strconv"
	"time"
)

type MapsConfig struct {
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	CacheTTL    time.Duration
}

// AreaConfig bounds the operator's serviceable region. Defaults cover
// Hong Kong; legs with an endpoint outside the box are rejected before
// any provider call.
type AreaConfig struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// FareConfig is operator policy, not code: base fares, the incremental
// rate table, and the local-time night window all come from here.
type FareConfig struct {
	BaseDayCents      int64
	BaseNightCents    int64
	PerUnitDayCents   int64
	PerUnitNightCents int64
	UnitMeters        int64
	FreeMeters        int64
	NightFrom         int
	NightUntil        int
	Currency          string
	Timezone          string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps MapsConfig
	Area AreaConfig
	Fare FareConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("HAIL_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("HAIL_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("HAIL_REDIS_ADDR", "")

	cfg.Maps.APIKey = envOrDefault("HAIL_MAPS_API_KEY", "")
	cfg.Maps.Timeout = time.Duration(envOrDefaultInt("HAIL_MAPS_TIMEOUT_MS", 3000)) * time.Millisecond
	cfg.Maps.MaxAttempts = envOrDefaultInt("HAIL_MAPS_MAX_ATTEMPTS", 3)
	cfg.Maps.CacheTTL = time.Duration(envOrDefaultInt("HAIL_MAPS_CACHE_TTL_S", 3600)) * time.Second

	cfg.Area.MinLat = envOrDefaultFloat("HAIL_AREA_MIN_LAT", 22.1)
	cfg.Area.MaxLat = envOrDefaultFloat("HAIL_AREA_MAX_LAT", 22.6)
	cfg.Area.MinLng = envOrDefaultFloat("HAIL_AREA_MIN_LNG", 113.8)
	cfg.Area.MaxLng = envOrDefaultFloat("HAIL_AREA_MAX_LNG", 114.5)

	cfg.Fare.BaseDayCents = envOrDefaultInt64("HAIL_FARE_BASE_DAY_CENTS", 2000)
	cfg.Fare.BaseNightCents = envOrDefaultInt64("HAIL_FARE_BASE_NIGHT_CENTS", 3000)
	cfg.Fare.PerUnitDayCents = envOrDefaultInt64("HAIL_FARE_UNIT_DAY_CENTS", 500)
	cfg.Fare.PerUnitNightCents = envOrDefaultInt64("HAIL_FARE_UNIT_NIGHT_CENTS", 800)
	cfg.Fare.UnitMeters = envOrDefaultInt64("HAIL_FARE_UNIT_METERS", 200)
	cfg.Fare.FreeMeters = envOrDefaultInt64("HAIL_FARE_FREE_METERS", 2000)
	cfg.Fare.NightFrom = envOrDefaultInt("HAIL_FARE_NIGHT_FROM", 0)
	cfg.Fare.NightUntil = envOrDefaultInt("HAIL_FARE_NIGHT_UNTIL", 12)
	cfg.Fare.Currency = envOrDefault("HAIL_FARE_CURRENCY", "HKD")
	cfg.Fare.Timezone = envOrDefault("HAIL_FARE_TZ", "Asia/Hong_Kong")

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
