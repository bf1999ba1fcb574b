// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/metrics"
)

// BadgerCache stores JSON-encoded values in an in-memory badger database.
// Nothing touches disk, so the cache is as volatile as the memory backend.
//
// Values come back from Get as json.RawMessage; Fetch decodes them into the
// caller's type.
type BadgerCache struct {
	db   *badger.DB
	ttl  time.Duration
	name string
	log  zerolog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	lastSweep atomic.Int64

	closeOnce sync.Once
	closeErr  error
}

// NewBadger opens an in-memory badger store.
func NewBadger(cfg Config) (*BadgerCache, error) {
	cfg = cfg.withDefaults()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}

	b := &BadgerCache{db: db, ttl: cfg.TTL, name: cfg.Name, log: logging.WithComponent("cache")}
	b.lastSweep.Store(time.Now().UnixNano())
	return b, nil
}

// Get returns the raw JSON stored under key.
func (b *BadgerCache) Get(key string) (interface{}, bool) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			b.log.Warn().Err(err).Str("cache", b.name).Msg("badger cache read failed")
		}
		b.misses.Add(1)
		metrics.RecordCacheMiss(b.name)
		return nil, false
	}

	b.hits.Add(1)
	metrics.RecordCacheHit(b.name)
	return json.RawMessage(out), true
}

// Set encodes value as JSON and stores it with the default TTL. Values that
// cannot be encoded are skipped.
func (b *BadgerCache) Set(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		b.log.Warn().Err(err).Str("cache", b.name).Str("key", key).Msg("badger cache encode failed")
		return
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(b.ttl))
	})
	if err != nil {
		b.log.Warn().Err(err).Str("cache", b.name).Msg("badger cache write failed")
	}
}

// Delete removes key.
func (b *BadgerCache) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		b.log.Warn().Err(err).Str("cache", b.name).Msg("badger cache delete failed")
	}
}

// Clear drops every key.
func (b *BadgerCache) Clear() {
	if err := b.db.DropAll(); err != nil {
		b.log.Warn().Err(err).Str("cache", b.name).Msg("badger cache clear failed")
	}
}

// Len counts live keys. Expired keys are skipped by badger's iterator.
func (b *BadgerCache) Len() int {
	n := 0
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// Name returns the cache's metrics label.
func (b *BadgerCache) Name() string {
	return b.name
}

// GetStats returns a snapshot of the cache counters. Badger expires entries
// internally, so evictions are not counted.
func (b *BadgerCache) GetStats() Stats {
	return Stats{
		Hits:      b.hits.Load(),
		Misses:    b.misses.Load(),
		TotalKeys: int64(b.Len()),
		LastSweep: time.Unix(0, b.lastSweep.Load()),
	}
}

// HitRate returns the hit rate as a percentage.
func (b *BadgerCache) HitRate() float64 {
	return b.GetStats().HitRate()
}

// Sweep only records the sweep time. Badger hides expired entries itself and
// an in-memory store has no value log to collect.
func (b *BadgerCache) Sweep() int {
	b.lastSweep.Store(time.Now().UnixNano())
	return 0
}

// Close closes the database. Safe to call more than once.
func (b *BadgerCache) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = b.db.Close()
	})
	return b.closeErr
}
