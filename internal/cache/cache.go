// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package cache provides the result cache that memoizes outbound catalog and
// video lookups. Entries expire a fixed TTL after insertion; expiry is
// checked lazily on read and by a periodic sweep. There is no size bound.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/metrics"
)

// Entry is a cached value with its insertion and expiry times.
type Entry struct {
	Data       interface{}
	InsertedAt time.Time
	ExpiresAt  time.Time
}

// Cache is an in-memory TTL cache safe for concurrent use.
// A background goroutine sweeps expired entries until Close is called.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	name    string
	clock   func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	lastSweep atomic.Int64 // unix nanos

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a memory cache with the given TTL and the default sweep interval.
func New(ttl time.Duration) *Cache {
	return NewWithConfig(Config{TTL: ttl, SweepInterval: DefaultSweepInterval})
}

// NewWithConfig creates a memory cache. A zero SweepInterval disables the
// background sweep; expired entries are then only removed on read.
func NewWithConfig(cfg Config) *Cache {
	cfg = cfg.withDefaults()
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     cfg.TTL,
		name:    cfg.Name,
		clock:   time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	c.lastSweep.Store(time.Now().UnixNano())

	if cfg.SweepInterval > 0 {
		go c.sweepLoop(cfg.SweepInterval)
	} else {
		close(c.done)
	}
	return c
}

// Get returns the value for key. Entries older than the TTL are treated as
// absent and removed.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	now := c.clock()
	if now.After(entry.ExpiresAt) {
		c.mu.Lock()
		// a concurrent Set may have refreshed the key
		if current, ok := c.entries[key]; ok && now.After(current.ExpiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
			metrics.RecordCacheEvictions(c.name, 1)
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores value under key with the default TTL, overwriting any entry.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	now := c.clock()
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:       value,
		InsertedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Name returns the cache's metrics label.
func (c *Cache) Name() string {
	return c.name
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		TotalKeys: int64(c.Len()),
		LastSweep: time.Unix(0, c.lastSweep.Load()),
	}
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	return c.GetStats().HitRate()
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.clock()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(int64(removed))
	c.lastSweep.Store(now.UnixNano())
	metrics.RecordCacheEvictions(c.name, removed)
	return removed
}

// Close stops the sweep goroutine. Entries remain readable. Safe to call
// more than once.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
	return nil
}

func (c *Cache) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				logging.Debug().
					Str("cache", c.name).
					Int("removed", removed).
					Msg("swept expired cache entries")
			}
		}
	}
}

func (c *Cache) recordHit() {
	c.hits.Add(1)
	metrics.RecordCacheHit(c.name)
}

func (c *Cache) recordMiss() {
	c.misses.Add(1)
	metrics.RecordCacheMiss(c.name)
}

// GenerateKey builds a deterministic key from an operation name and its
// arguments. Arguments are JSON-serialized and hashed so that equal
// arguments always map to the same key.
//
//	GenerateKey("tmdb.detail", map[string]interface{}{"id": 603, "append": "credits,videos"})
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
