// README: Order aggregate and status definitions.
package order

import (
	"time"

	"hail/internal/types"
)

type Status string

const (
	StatusAssigning Status = "ASSIGNING"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Order is the dispatch record. Stops, LegMeters, and Fare are computed at
// creation and never change; only Status and the transition timestamps move.
type Order struct {
	ID          int64
	Stops       []types.Point
	LegMeters   []int64
	Fare        types.Money
	Status      Status
	CreatedTime time.Time
	// OrderTime is the scheduled trip time: creation time for immediate
	// orders, a caller-supplied future time for advanced orders. It decides
	// the day/night fare rate.
	OrderTime   time.Time
	OngoingTime *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// AllowedTransitions represents the order state flow as code. COMPLETED and
// CANCELLED are terminal and have no outgoing edges.
var AllowedTransitions = map[Status][]Status{
	StatusAssigning: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
