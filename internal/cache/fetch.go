// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/models"
)

// DefaultLoadTimeout bounds a shared load once it is detached from its callers.
const DefaultLoadTimeout = 30 * time.Second

// Loader puts a Cacher in front of expensive lookups. Concurrent misses for
// the same key share one underlying call.
type Loader struct {
	cache       Cacher
	group       singleflight.Group
	loadTimeout time.Duration
}

// NewLoader wraps c with DefaultLoadTimeout.
func NewLoader(c Cacher) *Loader {
	return NewLoaderWithTimeout(c, DefaultLoadTimeout)
}

// NewLoaderWithTimeout wraps c. A shared load is not canceled by any single
// caller; it runs until it finishes or timeout elapses.
func NewLoaderWithTimeout(c Cacher, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Loader{cache: c, loadTimeout: timeout}
}

// Cache returns the wrapped cache.
func (l *Loader) Cache() Cacher {
	return l.cache
}

// Fetch returns the value cached under key, or runs load and caches its
// result. Only successful results are stored, so a failed lookup is retried
// on the next identical request.
func Fetch[T any](ctx context.Context, l *Loader, key string, load func(context.Context) (T, error)) models.Result[T] {
	if v, ok := lookup[T](l.cache, key); ok {
		logging.Debug().Str("key", key).Msg("cache hit")
		return models.OK(v)
	}

	if err := ctx.Err(); err != nil {
		return models.Fail[T](err)
	}

	// The load keeps the first caller's values (request and correlation IDs)
	// but not its cancellation; each caller stops waiting on its own ctx.
	ch := l.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.loadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, v)
		logging.Debug().Str("key", key).Msg("cache miss stored")
		return v, nil
	})

	var shared interface{}
	select {
	case <-ctx.Done():
		return models.Fail[T](ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return models.Fail[T](res.Err)
		}
		shared = res.Val
	}

	v, ok := shared.(T)
	if !ok {
		return models.Fail[T](models.ErrUnknownFailure)
	}
	return models.OK(v)
}

// lookup reads key and converts the stored value to T. Backends that store
// encoded values hand back json.RawMessage, which is decoded here. A value
// that does not fit T is dropped and reported as a miss.
func lookup[T any](c Cacher, key string) (T, bool) {
	var zero T

	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}

	switch v := raw.(type) {
	case T:
		return v, true
	case json.RawMessage:
		var out T
		if err := json.Unmarshal(v, &out); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
			c.Delete(key)
			return zero, false
		}
		return out, true
	default:
		c.Delete(key)
		return zero, false
	}
}
