// Package kv abstracts the durable key-value slot the job cache writes to,
// so the backend can be swapped for an in-memory fake in tests.
package kv

import (
	"context"
	"time"
)

// Store defines the key-value operations the cache layer needs. A zero TTL
// means the backend should not expire the key on its own.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Sweepable is implemented by backends that cannot expire keys natively and
// need a periodic purge instead.
type Sweepable interface {
	PurgeExpired(ctx context.Context) int
}
