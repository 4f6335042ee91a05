// README: Fare service computes trip fares from leg distances.
package fare

import (
	"time"

	"hail/internal/types"
)

type Service struct {
	policy Policy
}

func NewService(policy Policy) *Service {
	return &Service{policy: policy}
}

// Quote prices a trip from its per-leg driving distances and the scheduled
// trip time. The base fare depends on whether the local hour falls in the
// night window; distance beyond FreeMeters is charged PerUnit cents per
// UnitMeters, with the incremental charge floored to whole cents (integer
// division, never rounded up).
func (s *Service) Quote(legMeters []int64, at time.Time) types.Money {
	var total int64
	for _, d := range legMeters {
		total += d
	}

	base := s.policy.BaseDayCents
	perUnit := s.policy.PerUnitDayCents
	if s.policy.night(at) {
		base = s.policy.BaseNightCents
		perUnit = s.policy.PerUnitNightCents
	}

	cents := base
	if total > s.policy.FreeMeters && s.policy.UnitMeters > 0 {
		excess := total - s.policy.FreeMeters
		cents += excess * perUnit / s.policy.UnitMeters
	}
	return types.Money{Cents: cents, Currency: s.policy.Currency}
}
