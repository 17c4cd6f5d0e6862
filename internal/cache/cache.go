// Package cache provides the key-value collaborator used for read-through
// caching. The store is always authoritative; anything in here is derived
// state that may disappear at any time.
package cache

import (
	"context"
	"errors"
)

// ErrNotCached is returned by Get when a key is absent or expired. Callers
// treat any Get error, this one included, as "not cached" and fall through
// to the store.
var ErrNotCached = errors.New("cache: key not present")

// Cache is a key-value store with implicit expiry. Set applies the
// implementation's default TTL; entries are never updated in place, only
// deleted and repopulated on the next read.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
