// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package cache

import (
	"fmt"
	"time"
)

// Cacher is the interface shared by the cache backends.
type Cacher interface {
	// Get retrieves a value. Returns false if missing or expired.
	Get(key string) (interface{}, bool)

	// Set stores a value with the default TTL, overwriting any entry.
	Set(key string, value interface{})

	// Delete removes a value.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Len returns the number of stored entries.
	Len() int

	// Name returns the metrics label of the cache.
	Name() string

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the hit rate as a percentage.
	HitRate() float64

	// Sweep removes expired entries and returns how many were removed.
	Sweep() int

	// Close releases background resources.
	Close() error
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	TotalKeys int64     `json:"total_keys"`
	LastSweep time.Time `json:"last_sweep"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Backend selects the cache implementation.
type Backend string

const (
	// BackendMemory is the map-based TTL cache (default).
	BackendMemory Backend = "memory"

	// BackendBadger is an in-memory badger store. Expiry is handled by
	// badger's native entry TTL.
	BackendBadger Backend = "badger"
)

// Defaults for the result cache.
const (
	DefaultTTL           = time.Hour
	DefaultSweepInterval = 10 * time.Minute
	DefaultName          = "results"
)

// Config configures a cache backend.
type Config struct {
	Backend       Backend
	TTL           time.Duration
	SweepInterval time.Duration
	Name          string
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.SweepInterval < 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	return c
}

// NewCacher builds the backend selected by cfg.Backend.
func NewCacher(cfg Config) (Cacher, error) {
	cfg = cfg.withDefaults()

	switch cfg.Backend {
	case BackendMemory:
		return NewWithConfig(cfg), nil
	case BackendBadger:
		return NewBadger(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
