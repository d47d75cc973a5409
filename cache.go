package veloxdb

import (
	"context"
	"fmt"
	"time"
)

// Cache is the interface for caching entity lookups.
// Users should implement this interface with their preferred caching solution
// (e.g., Redis, Memcached, in-memory).
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	// Deletes invalidate whole tables through this method.
	DeletePrefix(ctx context.Context, prefix string) error
}

// CacheKey identifies a cached lookup.
type CacheKey struct {
	Table     string
	Operation string
	ID        any
}

// Prefix returns the prefix shared by every key of the table.
func (k CacheKey) Prefix() string {
	return k.Table + ":"
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return k.Prefix() + k.Operation + ":" + fmt.Sprint(k.ID)
}
