package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	store.Set(ctx, "https://example.com", "digest", time.Minute)
	got, ok := store.Get(ctx, "https://example.com")
	if !ok || got != "digest" {
		t.Fatalf("Get: got %q, %v", got, ok)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	current = current.Add(2 * time.Minute)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	store.Set(ctx, "k", "v", 0)
	current = current.Add(24 * time.Hour)

	if _, ok := store.Get(ctx, "k"); !ok {
		t.Error("zero TTL entry should not expire")
	}
}
