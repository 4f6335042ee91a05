// README: PostgreSQL store tests; skipped unless HAIL_TEST_DSN is set.
package order

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hail/internal/types"
)

func TestPGStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond) // pg timestamptz precision
	o := &Order{
		Stops:       hkStops,
		LegMeters:   []int64{10605},
		Fare:        types.Money{Cents: 23512, Currency: "HKD"},
		Status:      StatusAssigning,
		CreatedTime: now,
		OrderTime:   now,
	}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID <= 0 {
		t.Fatalf("expected store-assigned positive id, got %d", o.ID)
	}

	got, err := store.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusAssigning {
		t.Errorf("status = %s, want ASSIGNING", got.Status)
	}
	if len(got.Stops) != 2 || got.Stops[0] != hkStops[0] {
		t.Errorf("stops mismatch: %v", got.Stops)
	}
	if len(got.LegMeters) != 1 || got.LegMeters[0] != 10605 {
		t.Errorf("legs mismatch: %v", got.LegMeters)
	}
	if got.Fare != o.Fare {
		t.Errorf("fare mismatch: %v vs %v", got.Fare, o.Fare)
	}
	if got.OngoingTime != nil || got.CompletedAt != nil || got.CancelledAt != nil {
		t.Error("fresh order must have no transition stamps")
	}
}

func TestPGStoreIDsIncrease(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		o := &Order{
			Stops:       hkStops,
			LegMeters:   []int64{100},
			Fare:        types.Money{Cents: 2000, Currency: "HKD"},
			Status:      StatusAssigning,
			CreatedTime: time.Now(),
			OrderTime:   time.Now(),
		}
		if err := store.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
		if o.ID <= last {
			t.Fatalf("ids not increasing: %d after %d", o.ID, last)
		}
		last = o.ID
	}
}

func TestPGStoreUpdateStatusCAS(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	o := &Order{
		Stops:       hkStops,
		LegMeters:   []int64{100},
		Fare:        types.Money{Cents: 2000, Currency: "HKD"},
		Status:      StatusAssigning,
		CreatedTime: time.Now(),
		OrderTime:   time.Now(),
	}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := store.UpdateStatus(ctx, o.ID, StatusAssigning, StatusOngoing, time.Now())
	if err != nil || !ok {
		t.Fatalf("first CAS: ok=%v err=%v", ok, err)
	}

	// Same expected-from again must lose.
	ok, err = store.UpdateStatus(ctx, o.ID, StatusAssigning, StatusOngoing, time.Now())
	if err != nil {
		t.Fatalf("second CAS: %v", err)
	}
	if ok {
		t.Fatal("CAS with stale expected status must fail")
	}

	got, err := store.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusOngoing || got.OngoingTime == nil {
		t.Fatalf("status=%s ongoing=%v", got.Status, got.OngoingTime)
	}
}

func TestPGStoreConcurrentTake(t *testing.T) {
	store := setupTestStore(t)
	svc := NewService(store, stubProvider{meters: 2500}, testQuoter(t), nil)
	ctx := context.Background()

	o := mustCreate(t, svc, hkStops)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Take(ctx, o.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if err != ErrConflict && err != ErrInvalidState {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 successful take, got %d", success)
	}
	assertStatus(t, svc, o.ID, StatusOngoing)
}

func setupTestStore(t *testing.T) *PGStore {
	t.Helper()

	dsn := os.Getenv("HAIL_TEST_DSN")
	if dsn == "" {
		t.Skip("HAIL_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE orders RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	return NewPGStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "migrations", "0001_init.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cleaned := stripSQLComments(string(content))
	for _, stmt := range splitSQL(cleaned) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
