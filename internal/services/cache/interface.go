package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys with a TTL
type Cache interface {
	// Get retrieves a value; expired entries are reported as missing
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with a TTL. A non-positive ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error
}

// Stats provides statistics about cache usage
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Sets      int64 `json:"sets"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"size_bytes"`
	MaxBytes  int64 `json:"max_bytes"`
}
