// README: Order service implements creation and lifecycle transitions.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hail/internal/types"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("order not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("order state conflict")
)

// DistanceProvider resolves the driving distance of a single leg.
type DistanceProvider interface {
	Distance(ctx context.Context, from, to types.Point) (int64, error)
}

// FareQuoter prices a trip from its leg distances and scheduled time.
type FareQuoter interface {
	Quote(legMeters []int64, at time.Time) types.Money
}

type Service struct {
	store    Store
	distance DistanceProvider
	fare     FareQuoter
	log      *zap.Logger
	now      func() time.Time
}

func NewService(store Store, distance DistanceProvider, fare FareQuoter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, distance: distance, fare: fare, log: log, now: time.Now}
}

type CreateCommand struct {
	Stops []types.Point
	// OrderAt schedules an advanced order; nil means dispatch now.
	OrderAt *time.Time
}

func (cmd CreateCommand) validate(now time.Time) error {
	if cmd.Stops == nil {
		return fmt.Errorf("%w: stops is required", ErrBadRequest)
	}
	if len(cmd.Stops) < 2 {
		return fmt.Errorf("%w: at least two stops are required", ErrBadRequest)
	}
	for i, p := range cmd.Stops {
		if !p.Valid() {
			return fmt.Errorf("%w: stop %d has invalid coordinates", ErrBadRequest, i)
		}
	}
	if cmd.OrderAt != nil && !cmd.OrderAt.After(now) {
		return fmt.Errorf("%w: orderAt must be in the future", ErrBadRequest)
	}
	return nil
}

// Create validates the request, resolves every leg distance, prices the
// trip, and persists the order. Any leg failure aborts the whole creation;
// nothing is persisted on error.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	now := s.now()
	if err := cmd.validate(now); err != nil {
		return nil, err
	}

	legs := make([]int64, len(cmd.Stops)-1)
	g, gctx := errgroup.WithContext(ctx)
	for i := range legs {
		i := i
		g.Go(func() error {
			d, err := s.distance.Distance(gctx, cmd.Stops[i], cmd.Stops[i+1])
			if err != nil {
				return err
			}
			legs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	orderTime := now
	if cmd.OrderAt != nil {
		orderTime = *cmd.OrderAt
	}

	o := &Order{
		Stops:       cmd.Stops,
		LegMeters:   legs,
		Fare:        s.fare.Quote(legs, orderTime),
		Status:      StatusAssigning,
		CreatedTime: now,
		OrderTime:   orderTime,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int("stops", len(o.Stops)),
		zap.String("fare", o.Fare.Amount()))
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.store.Get(ctx, id)
}

// Take moves an ASSIGNING order to ONGOING and stamps OngoingTime.
func (s *Service) Take(ctx context.Context, id int64) (*Order, error) {
	return s.transition(ctx, id, StatusOngoing)
}

// Complete moves an ONGOING order to COMPLETED and stamps CompletedAt.
func (s *Service) Complete(ctx context.Context, id int64) (*Order, error) {
	return s.transition(ctx, id, StatusCompleted)
}

// Cancel moves an ASSIGNING or ONGOING order to CANCELLED and stamps
// CancelledAt.
func (s *Service) Cancel(ctx context.Context, id int64) (*Order, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, to Status) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, id, o.Status, to, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: someone moved the order first.
		return nil, ErrConflict
	}
	updated, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("order transitioned",
		zap.Int64("order_id", id),
		zap.String("from", string(o.Status)),
		zap.String("to", string(to)))
	return updated, nil
}
