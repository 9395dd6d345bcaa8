package media

import (
	"context"
	"testing"
	"time"
)

// unreachableCache points at a port nothing listens on.
func unreachableCache() *Cache {
	return NewCache("127.0.0.1:1", "", 0, time.Hour)
}

// TestCache_UnreachableDegradesToDirectFetch verifies media still resolves
// through the fetcher when the cache backend is down
func TestCache_UnreachableDegradesToDirectFetch(t *testing.T) {
	cache := unreachableCache()
	defer func() { _ = cache.Close() }()

	fetcher := newFakeFetcher()
	fetcher.data["/api/stickers/a"] = testPNG()

	loader := NewLoader(fetcher, cache)
	node := staticNode("n1", "/api/stickers/a")

	loader.Mount(context.Background(), []*Node{node}, nil)

	if !node.Resolved() || node.Failed {
		t.Fatalf("Node should resolve despite the cache being down: failed=%v", node.Failed)
	}
	if node.Raster == nil {
		t.Error("Expected decoded raster info")
	}
	if got := fetcher.count("/api/stickers/a"); got != 1 {
		t.Errorf("Expected 1 direct fetch, got %d", got)
	}
}

// TestCache_FailuresAreSwallowed verifies cache errors never reach the caller
func TestCache_FailuresAreSwallowed(t *testing.T) {
	cache := unreachableCache()
	defer func() { _ = cache.Close() }()

	ctx := context.Background()

	if cache.Available(ctx) {
		t.Fatal("Unreachable cache should not report available")
	}
	if _, ok := cache.Get(ctx, "/api/stickers/a"); ok {
		t.Error("Get against a down cache should report a miss")
	}
	// Put must log and swallow, never error or panic.
	cache.Put(ctx, "/api/stickers/a", []byte("payload"))
	if _, ok := cache.Get(ctx, "/api/stickers/a"); ok {
		t.Error("Nothing should be readable from a down cache")
	}
}

// TestCacheKey_FileID verifies keys use the file id at the end of the locator
func TestCacheKey_FileID(t *testing.T) {
	if got := cacheKey("/api/stickers/CAACAgIA"); got != "sticker:file:CAACAgIA" {
		t.Errorf("Unexpected cache key: %s", got)
	}
}
