package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the knobs for the in-process cache.
type Config struct {
	// Capacity is the maximum number of entries held before eviction kicks in.
	Capacity int
	// NumShards spreads entries across locks for concurrent access.
	NumShards int
	// TTL is the default time-to-live applied by Set.
	TTL time.Duration
	// EvictionPercentage is how much of a full cache gets evicted at once (1-100).
	EvictionPercentage int
}

// DefaultConfig mirrors the expiry the previous deployment used (30 minutes).
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                30 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Memory is a sharded in-process Cache with TTL expiry.
type Memory struct {
	client *sturdyc.Client[string]
}

// NewMemory builds a Memory cache from cfg, falling back to defaults for
// zero values.
func NewMemory(cfg Config) *Memory {
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.NumShards <= 0 {
		cfg.NumShards = def.NumShards
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.EvictionPercentage < 1 || cfg.EvictionPercentage > 100 {
		cfg.EvictionPercentage = def.EvictionPercentage
	}

	return &Memory{
		client: sturdyc.New[string](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage),
	}
}

// Get returns the cached value or ErrNotCached.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	value, ok := m.client.Get(key)
	if !ok {
		return "", ErrNotCached
	}
	return value, nil
}

// Set stores value under key with the default TTL.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.client.Set(key, value)
	return nil
}

// Delete evicts key. Deleting an absent key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.client.Delete(key)
	return nil
}
