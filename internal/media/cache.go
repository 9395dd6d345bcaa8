package media

import (
	"context"
	"log"
	"path"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL matches the backend's own media cache window.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache stores resolved media bytes in Redis, keyed by file id. Redis being
// unreachable degrades silently to uncached operation; the gallery never
// fails because of the cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a media cache. A zero ttl falls back to DefaultCacheTTL.
func NewCache(addr string, password string, db int, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Available reports whether the cache backend answers.
func (c *Cache) Available(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// Get returns cached media bytes for a locator, false on miss or cache
// failure.
func (c *Cache) Get(ctx context.Context, locator string) ([]byte, bool) {
	data, err := c.client.Get(ctx, cacheKey(locator)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores media bytes for a locator. Failures are logged and swallowed.
func (c *Cache) Put(ctx context.Context, locator string, data []byte) {
	if err := c.client.Set(ctx, cacheKey(locator), data, c.ttl).Err(); err != nil {
		log.Printf("Media cache write failed for %s: %v", locator, err)
	}
}

// Close releases the cache connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// cacheKey keys cached media by the file id at the end of the locator path.
func cacheKey(locator string) string {
	return "sticker:file:" + path.Base(locator)
}
