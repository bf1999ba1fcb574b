// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemarathon/internal/cache"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/cinemarathon/internal/api.Version=...".
var Version = "dev"

// breakerOpen is the state string sources report when their breaker trips.
const breakerOpen = "open"

// SourceHealth is the availability of one external source.
type SourceHealth struct {
	Enabled bool   `json:"enabled"`
	Breaker string `json:"breaker"`
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status  string                  `json:"status"`
	Version string                  `json:"version"`
	Uptime  float64                 `json:"uptime_seconds"`
	Cache   CacheHealth             `json:"cache"`
	Sources map[string]SourceHealth `json:"sources"`
}

// CacheHealth reports the result cache.
type CacheHealth struct {
	Name    string      `json:"name"`
	Entries int         `json:"entries"`
	HitRate float64     `json:"hit_rate"`
	Stats   cache.Stats `json:"stats"`
}

// Health handles GET /api/v1/health.
//
// @Summary Service health
// @Description Liveness with cache statistics and source availability. Status is "degraded" when the catalog breaker is open; the video source only affects its own entry.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	catalogState := h.catalogSource.BreakerState()
	status := "healthy"
	if catalogState == breakerOpen {
		status = "degraded"
	}

	health := HealthStatus{
		Status:  status,
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Sources: map[string]SourceHealth{
			"catalog": {Enabled: true, Breaker: catalogState},
			"videos":  {Enabled: h.videos.Enabled(), Breaker: h.videos.BreakerState()},
		},
	}
	if h.cache != nil {
		health.Cache = CacheHealth{
			Name:    h.cache.Name(),
			Entries: h.cache.Len(),
			HitRate: h.cache.HitRate(),
			Stats:   h.cache.GetStats(),
		}
	}

	respondSuccess(w, start, health)
}
