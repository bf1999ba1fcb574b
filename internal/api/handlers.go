// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinemarathon/internal/cache"
	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/models"
)

// Catalog is the flat catalog lookup surface used by the handlers.
type Catalog interface {
	Popular(ctx context.Context) models.Result[[]models.Candidate]
	TopRated(ctx context.Context) models.Result[[]models.Candidate]
	Search(ctx context.Context, query string) models.Result[[]models.Candidate]
	DiscoverByDecade(ctx context.Context, decade int) models.Result[[]models.Candidate]
}

// Enricher builds enriched movie pools.
type Enricher interface {
	PopularEnriched(ctx context.Context, limit int) []models.EnrichedMovie
	SearchEnriched(ctx context.Context, term string, limit int) []models.EnrichedMovie
	EnrichCandidates(ctx context.Context, candidates []models.Candidate) []models.EnrichedMovie
}

// VideoSource is the secondary video source as seen by the handlers.
type VideoSource interface {
	Enabled() bool
	BreakerState() string
	SearchTrailers(ctx context.Context, title string, limit int) ([]models.VideoResult, error)
	VideoStats(ctx context.Context, videoID string) (*models.VideoStats, error)
}

// BreakerReporter exposes a source's circuit breaker state for health checks.
type BreakerReporter interface {
	BreakerState() string
}

// Handler serves the HTTP API.
//
// Handler methods are split across files:
//   - handlers_movies.go: flat and enriched movie lists
//   - handlers_marathon.go: marathon planning and presets
//   - handlers_videos.go: trailer search and video statistics
//   - handlers_health.go: health endpoint
type Handler struct {
	config        *config.Config
	catalog       Catalog
	enricher      Enricher
	videos        VideoSource
	catalogSource BreakerReporter
	cache         cache.Cacher
	startTime     time.Time
}

// NewHandler wires the handlers to the core services.
//
//	handler := api.NewHandler(cfg, catalogSvc, orchestrator, ytClient, tmdbClient, resultCache)
//	router := api.NewRouter(handler, cfg)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(cfg *config.Config, catalog Catalog, enricher Enricher, videos VideoSource, catalogSource BreakerReporter, c cache.Cacher) *Handler {
	return &Handler{
		config:        cfg,
		catalog:       catalog,
		enricher:      enricher,
		videos:        videos,
		catalogSource: catalogSource,
		cache:         c,
		startTime:     time.Now(),
	}
}
