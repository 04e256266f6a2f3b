// Package cache holds time-boxed byte values behind a small interface with an
// in-process and a Redis backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values under string keys until their TTL elapses.
type Cache interface {
	// Get returns the value and true on a hit. An expired entry is a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
