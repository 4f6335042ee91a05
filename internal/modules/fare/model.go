// README: Fare policy definition (operator rate table and night window).
package fare

import (
	"time"

	"hail/internal/config"
)

// Policy is the operator's rate table. Amounts are minor units (cents).
// The night window is half-open [NightFrom, NightUntil) in local hours and
// may wrap midnight (e.g. 22 → 6). Equal endpoints mean no night window.
type Policy struct {
	BaseDayCents      int64
	BaseNightCents    int64
	PerUnitDayCents   int64
	PerUnitNightCents int64
	UnitMeters        int64
	FreeMeters        int64
	NightFrom         int
	NightUntil        int
	Currency          string
	Location          *time.Location
}

// PolicyFromConfig resolves the configured timezone and builds a Policy.
func PolicyFromConfig(cfg config.FareConfig) (Policy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		BaseDayCents:      cfg.BaseDayCents,
		BaseNightCents:    cfg.BaseNightCents,
		PerUnitDayCents:   cfg.PerUnitDayCents,
		PerUnitNightCents: cfg.PerUnitNightCents,
		UnitMeters:        cfg.UnitMeters,
		FreeMeters:        cfg.FreeMeters,
		NightFrom:         cfg.NightFrom,
		NightUntil:        cfg.NightUntil,
		Currency:          cfg.Currency,
		Location:          loc,
	}, nil
}

func (p Policy) night(at time.Time) bool {
	if p.Location != nil {
		at = at.In(p.Location)
	}
	h := at.Hour()
	switch {
	case p.NightFrom < p.NightUntil:
		return h >= p.NightFrom && h < p.NightUntil
	case p.NightFrom > p.NightUntil:
		return h >= p.NightFrom || h < p.NightUntil
	default:
		return false
	}
}
