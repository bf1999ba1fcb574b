// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	c := NewWithConfig(Config{TTL: ttl, Name: "test"})
	c.clock = clock.Now
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	// Set overwrites unconditionally
	c.Set("key1", "value2")
	if value, _ = c.Get("key1"); value != "value2" {
		t.Errorf("Expected overwritten value2, got %v", value)
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, time.Hour)

	c.Set("key1", "value1")

	clock.Advance(59 * time.Minute)
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist inside the TTL window")
	}

	clock.Advance(2 * time.Minute)
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on read, Len() = %d", c.Len())
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheSweep(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(t, time.Minute)

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(30 * time.Second)
	c.Set("fresh", 3)
	clock.Advance(45 * time.Second)

	if removed := c.Sweep(); removed != 2 {
		t.Errorf("Sweep() removed %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive the sweep")
	}
	if !c.GetStats().LastSweep.Equal(clock.Now()) {
		t.Error("LastSweep should record the sweep time")
	}
}

func TestCacheSweepLoopAndClose(t *testing.T) {
	t.Parallel()

	c := NewWithConfig(Config{TTL: 10 * time.Millisecond, SweepInterval: 5 * time.Millisecond, Name: "loop"})
	c.Set("k", "v")

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Error("background sweep should remove expired entries")
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// second Close is a no-op
	if err := c.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestCacheStats(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.GetStats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits 1 miss", stats)
	}
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if rate := c.HitRate(); rate < 66.6 || rate > 66.7 {
		t.Errorf("HitRate() = %v, want ~66.67", rate)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("empty stats hit rate should be 0")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(t, time.Minute)

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Set(key, w)
				if v, ok := c.Get(key); ok {
					if _, isInt := v.(int); !isInt {
						t.Errorf("corrupted value %v", v)
					}
				}
				if i%50 == 0 {
					c.Sweep()
				}
			}
		}(w)
	}
	wg.Wait()

	if c.Len() != 20 {
		t.Errorf("Len() = %d, want 20", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("tmdb.detail", map[string]interface{}{"id": 603, "append": "credits,videos"})
	b := GenerateKey("tmdb.detail", map[string]interface{}{"append": "credits,videos", "id": 603})
	if a != b {
		t.Errorf("equal arguments must give equal keys: %q vs %q", a, b)
	}

	if c := GenerateKey("tmdb.detail", map[string]interface{}{"id": 604, "append": "credits,videos"}); c == a {
		t.Error("different arguments must give different keys")
	}
	if d := GenerateKey("tmdb.search", map[string]interface{}{"id": 603, "append": "credits,videos"}); d == a {
		t.Error("different methods must give different keys")
	}
	if len(a) != len("tmdb.detail:")+32 {
		t.Errorf("unexpected key length %d: %q", len(a), a)
	}
}

func TestNewCacher(t *testing.T) {
	t.Parallel()

	mem, err := NewCacher(Config{})
	if err != nil {
		t.Fatalf("NewCacher(memory) error = %v", err)
	}
	defer mem.Close()
	if _, ok := mem.(*Cache); !ok {
		t.Errorf("default backend = %T, want *Cache", mem)
	}
	if mem.Name() != DefaultName {
		t.Errorf("Name() = %q, want %q", mem.Name(), DefaultName)
	}

	if _, err := NewCacher(Config{Backend: "redis"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
