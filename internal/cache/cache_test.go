package cache

import (
	"context"
	"testing"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/models"
)

func TestDisabledRedisIsSafe(t *testing.T) {
	r := NewRedis(&config.RedisConfig{Enabled: false})
	if r.Enabled() {
		t.Fatalf("redis should be disabled")
	}
	var dest map[string]string
	hit, err := r.GetJSON(context.Background(), "k", &dest)
	if err != nil || hit {
		t.Fatalf("disabled redis should miss without error, hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(context.Background(), "k", "v", 0); err != nil {
		t.Fatalf("disabled redis set should be a no-op: %v", err)
	}
	if got := r.Key("cart:1"); got != "sf:cart:1" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestNewCartSnapshotsFallsBackToLRU(t *testing.T) {
	snapshots := NewCartSnapshots(nil, config.CartConfig{SnapshotLRUSize: 2})
	if _, ok := snapshots.(*LRUCartSnapshots); !ok {
		t.Fatalf("expected lru snapshots when redis is disabled, got %T", snapshots)
	}
}

func TestLRUCartSnapshotsStoresCopies(t *testing.T) {
	ctx := context.Background()
	s := NewLRUCartSnapshots(2)
	lines := []models.CartLine{{LineID: "p1", ProductID: "p1", Quantity: 1}}
	if err := s.Save(ctx, "a", lines); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	lines[0].Quantity = 9

	got, ok, err := s.Load(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if got[0].Quantity != 1 {
		t.Fatalf("snapshot should not alias caller slice, got %d", got[0].Quantity)
	}

	_ = s.Save(ctx, "b", nil)
	_ = s.Save(ctx, "c", nil)
	if _, ok, _ := s.Load(ctx, "a"); ok {
		t.Fatalf("oldest entry should be evicted beyond capacity")
	}
	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
