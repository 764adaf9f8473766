// Package cache provides the caching layer for fetched repository trees.
//
// Three backends implement the same interface:
//   - FileCache: per-user disk cache for CLI runs
//   - RedisCache: shared cache for serve-mode deployments
//   - NullCache: no-op backend for --no-cache and tests
//
// Keys are namespaced strings (e.g. "tree:github:owner/repo"); the file
// backend hashes them to safe filenames, the redis backend uses them
// directly.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TreeKey builds the cache key for a fetched repository tree.
func TreeKey(kind, owner, repo string) string {
	return "tree:" + kind + ":" + owner + "/" + repo
}

// NullCache discards every write and misses every read. It backs
// --no-cache runs and tests that don't care about caching.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() NullCache {
	return NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}
