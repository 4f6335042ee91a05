package order

import (
	"context"
	"testing"
	"time"

	"hail/internal/types"
)

func TestMemStoreUpdateStatusUnknownID(t *testing.T) {
	store := NewMemStore()
	ok, err := store.UpdateStatus(context.Background(), 42, StatusAssigning, StatusOngoing, time.Now())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ok {
		t.Fatal("update on unknown id must report false")
	}
}

func TestMemStoreGetReturnsCopy(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	o := &Order{
		Stops:       append([]types.Point(nil), hkStops...),
		LegMeters:   []int64{100},
		Fare:        types.Money{Cents: 2000, Currency: "HKD"},
		Status:      StatusAssigning,
		CreatedTime: time.Now(),
		OrderTime:   time.Now(),
	}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = StatusCancelled
	got.Stops[0] = types.Point{}
	got.LegMeters[0] = -1

	again, err := store.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Status != StatusAssigning {
		t.Error("mutating a returned order must not change stored status")
	}
	if again.Stops[0] != hkStops[0] {
		t.Error("mutating returned stops must not change stored stops")
	}
	if again.LegMeters[0] != 100 {
		t.Error("mutating returned legs must not change stored legs")
	}
}
