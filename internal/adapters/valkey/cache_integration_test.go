//go:build integration
// +build integration

package valkey_test

import (
	"context"
	"testing"
	"time"

	"github.com/hvmartinez/coordsim/internal/adapters/valkey"
	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
	"github.com/hvmartinez/coordsim/internal/pkg/config"
)

// setupCache connects to the configured Valkey instance.
func setupCache(t *testing.T) *valkey.Cache {
	cfg, err := config.Load("coordsim-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		t.Skipf("valkey unavailable at %s: %v", cfg.Valkey.Addr, err)
	}
	return cache
}

func TestCache_RoundTrip(t *testing.T) {
	cache := setupCache(t)
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "coordsim:test:roundtrip"
	defer cache.Delete(ctx, key)

	if err := cache.Set(ctx, key, []byte("octahedral"), 30); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "octahedral" {
		t.Errorf("got %q, want octahedral", got)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cache.Get(ctx, key); err == nil {
		t.Error("expected miss after delete")
	}
}

func TestSweep_ReadThroughCaching(t *testing.T) {
	cache := setupCache(t)
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	svc := usecases.NewClassifierService(domain.Pauling, cache)

	first, err := svc.Sweep(ctx, 1.25, 0.25, 2.25, 9)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}

	// Second call is served from the cache and must be identical.
	second, err := svc.Sweep(ctx, 1.25, 0.25, 2.25, 9)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
