// Package cache provides the persistent key-value string store used to cache
// HTTP responses across runs.
//
// A [Store] maps caller-chosen string keys to string values. Entries have no
// TTL and live until they are deleted or the store is cleared. Backends:
//
//   - [FileStore]: one JSON file per key under the user cache directory (CLI default)
//   - [MemoryStore]: in-process map, for tests and short-lived servers
//   - [NullStore]: stores nothing, used by --no-cache
//   - [RedisStore]: shared Redis instance
//   - [MongoStore]: MongoDB collection
//
// Stores do not coordinate concurrent writers beyond what the backend offers;
// the last write to a key wins.
package cache

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("cache: store closed")

// Store is a persistent string key-value store.
type Store interface {
	// Get returns the value stored under key. The bool reports whether the
	// key was present. A missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the store and returns how many
	// entries were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
