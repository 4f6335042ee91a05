// README: Order store contract and the PostgreSQL implementation.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists orders. Implementations must make UpdateStatus a single
// atomic compare-and-swap on the current status so that two conflicting
// transitions on the same order cannot both succeed.
type Store interface {
	// Create inserts the order and assigns a unique positive ID.
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	// UpdateStatus moves the order from `from` to `to` and stamps the
	// matching transition time. It reports false when the order is no
	// longer in `from` (or does not exist).
	UpdateStatus(ctx context.Context, id int64, from, to Status, at time.Time) (bool, error)
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, o *Order) error {
	stops, err := json.Marshal(o.Stops)
	if err != nil {
		return err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO orders (
			stops, leg_meters, fare_cents, currency, status,
			created_time, order_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		stops,
		o.LegMeters,
		o.Fare.Cents,
		o.Fare.Currency,
		string(o.Status),
		o.CreatedTime,
		o.OrderTime,
	)
	return row.Scan(&o.ID)
}

func (s *PGStore) Get(ctx context.Context, id int64) (*Order, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, stops, leg_meters, fare_cents, currency, status,
		       created_time, order_time, ongoing_time, completed_at, cancelled_at
		FROM orders
		WHERE id = $1`, id,
	)

	var o Order
	var stops []byte
	var status string
	err := row.Scan(
		&o.ID, &stops, &o.LegMeters, &o.Fare.Cents, &o.Fare.Currency, &status,
		&o.CreatedTime, &o.OrderTime, &o.OngoingTime, &o.CompletedAt, &o.CancelledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stops, &o.Stops); err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, id int64, from, to Status, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    ongoing_time = CASE WHEN $1 = 'ONGOING' THEN $2 ELSE ongoing_time END,
		    completed_at = CASE WHEN $1 = 'COMPLETED' THEN $2 ELSE completed_at END,
		    cancelled_at = CASE WHEN $1 = 'CANCELLED' THEN $2 ELSE cancelled_at END
		WHERE id = $3 AND status = $4`,
		string(to),
		at,
		id,
		string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

var _ Store = (*PGStore)(nil)
