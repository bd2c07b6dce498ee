package datasources

import (
	"context"
	"time"
)

// Cache is the shared TTL cache port used for provider response caching and
// per-source rate-limit counters.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Increment atomically increments a counter, starting a new TTL window
	// on first increment, and returns the new value. Two concurrent callers
	// must never observe the same value for the same key.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
