// Package cache defines the key-value side-cache used in front of the task store.
//
// Cached values are always derived from the authoritative store: they can be
// discarded at any time and regenerated on the next read.
package cache

import (
	"context"
	"errors"
	"time"
)

// TasksKey is the fixed key holding the serialized task listing.
const TasksKey = "tasks"

// DefaultTTL is how long a cached listing lives when nothing invalidates it.
const DefaultTTL = 3600 * time.Second

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a key-value store with per-entry expiration.
type Cache interface {
	// Get returns the value stored at key, or ErrMiss when there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any previous value, expiring after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
