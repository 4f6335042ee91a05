// README: In-memory order store for tests and keyless dev mode.
package order

import (
	"context"
	"sync"
	"time"

	"hail/internal/types"
)

// MemStore keeps orders in a mutex-guarded map with the same
// compare-and-swap semantics as PGStore. IDs are monotonically increasing.
type MemStore struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*Order
}

func NewMemStore() *MemStore {
	return &MemStore{orders: make(map[int64]*Order)}
}

func (s *MemStore) Create(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *MemStore) Get(_ context.Context, id int64) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id int64, from, to Status, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	stamp := at
	switch to {
	case StatusOngoing:
		o.OngoingTime = &stamp
	case StatusCompleted:
		o.CompletedAt = &stamp
	case StatusCancelled:
		o.CancelledAt = &stamp
	}
	return true, nil
}

// cloneOrder guards against callers mutating stored state through shared
// slices or timestamp pointers.
func cloneOrder(o *Order) *Order {
	c := *o
	c.Stops = append([]types.Point(nil), o.Stops...)
	c.LegMeters = append([]int64(nil), o.LegMeters...)
	c.OngoingTime = cloneTime(o.OngoingTime)
	c.CompletedAt = cloneTime(o.CompletedAt)
	c.CancelledAt = cloneTime(o.CancelledAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

var _ Store = (*MemStore)(nil)
