// Package cache provides response caching for registry API clients.
//
// Registry lookups are slow and rate-limited (crates.io in particular), so
// responses are cached between runs. Three backends are provided:
//
//   - FileCache: per-user cache directory, survives across runs (the default)
//   - RedisCache: shared cache for CI fleets running the analyzer
//   - NullCache: no-op backend for tests and --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend for cached registry responses.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (nil, false, nil) on a miss; expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
