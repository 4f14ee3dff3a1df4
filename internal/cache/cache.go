// Package cache caches assembled statistics trees so repeated dashboard
// queries over the same window do not re-read the record source. Caching the
// assembled result is safe because the assembler never aliases fold state.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/model"
)

// Cache is a byte-level cache layer.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives the cache key for one aggregation: the mode plus the
// source-query fragment it was computed over.
func ResultKey(mode, queryKey string) string {
	hash := sha256.Sum256([]byte(mode + "|" + queryKey))
	return "agentstats:v1:" + hex.EncodeToString(hash[:])
}

// Results is a typed wrapper storing statistics trees as JSON.
type Results struct {
	backend Cache
}

// NewResults wraps a cache layer for statistics storage.
func NewResults(backend Cache) *Results {
	return &Results{backend: backend}
}

// Get returns a cached result, or nil when absent or undecodable.
func (r *Results) Get(key string) *model.StatsResult {
	data, ok := r.backend.Get(key)
	if !ok {
		return nil
	}
	var res model.StatsResult
	if err := json.Unmarshal(data, &res); err != nil {
		_ = r.backend.Delete(key)
		return nil
	}
	return &res
}

// Set stores a result with the given TTL.
func (r *Results) Set(key string, res *model.StatsResult, ttl time.Duration) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return r.backend.Set(key, data, ttl)
}

// Clear drops every cached result.
func (r *Results) Clear() error {
	return r.backend.Clear()
}

// FromConfig builds the configured cache stack: memory-only when no disk
// directory is set, layered memory+disk otherwise. Returns nil when caching
// is disabled.
func FromConfig(cfg model.CacheConfig) *Results {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewResults(NewMemoryCache(cfg.MemoryTTL, 10*time.Minute))
	}
	return NewResults(NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL))
}
