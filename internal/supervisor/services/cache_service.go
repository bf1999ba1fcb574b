// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinemarathon/internal/cache"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/metrics"
)

const defaultStatsInterval = 10 * time.Minute

// CacheMaintenanceService publishes result cache gauges every interval.
// It does not close the cache: the API layer may still be draining requests
// when this layer stops, so the owner closes it after the tree returns.
type CacheMaintenanceService struct {
	cache    cache.Cacher
	interval time.Duration
	name     string
}

// NewCacheMaintenanceService creates the service. A non-positive interval
// uses 10 minutes.
func NewCacheMaintenanceService(c cache.Cacher, interval time.Duration) *CacheMaintenanceService {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	return &CacheMaintenanceService{
		cache:    c,
		interval: interval,
		name:     "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.publish()
	for {
		select {
		case <-ticker.C:
			s.publish()
		case <-ctx.Done():
			s.publish()
			return ctx.Err()
		}
	}
}

func (s *CacheMaintenanceService) publish() {
	entries, hitRate := s.cache.Len(), s.cache.HitRate()
	metrics.SetCacheStats(s.cache.Name(), entries, hitRate)
	log := logging.WithService(s.name)
	log.Debug().
		Str("cache", s.cache.Name()).
		Int("entries", entries).
		Float64("hit_rate", hitRate).
		Msg("Cache stats published")
}

// String names the service in supervisor events.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
