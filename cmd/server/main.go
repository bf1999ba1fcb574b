// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/cinemarathon/docs" // Import generated swagger docs
	"github.com/tomtom215/cinemarathon/internal/api"
	"github.com/tomtom215/cinemarathon/internal/cache"
	"github.com/tomtom215/cinemarathon/internal/catalog"
	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/enrich"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/sources/tmdb"
	"github.com/tomtom215/cinemarathon/internal/sources/youtube"
	"github.com/tomtom215/cinemarathon/internal/supervisor"
	"github.com/tomtom215/cinemarathon/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("video_source_enabled", cfg.YouTube.Enabled()).
		Msg("Starting CineMarathon")

	resultCache, err := cache.NewCacher(cache.Config{
		Backend:       cache.Backend(cfg.Cache.Backend),
		TTL:           cfg.Cache.TTL,
		SweepInterval: cfg.Cache.SweepInterval,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize result cache")
	}
	loader := cache.NewLoaderWithTimeout(resultCache, cfg.Enrich.ItemTimeout)

	tmdbClient := tmdb.NewClient(cfg.TMDB, cfg.Breaker)
	ytClient := youtube.NewClient(cfg.YouTube, cfg.Breaker)
	if !ytClient.Enabled() {
		logging.Warn().Msg("Video platform API key not set; trailers come from catalog data only")
	}

	catalogSvc := catalog.NewService(tmdbClient, loader, catalog.NewNormalizer(cfg.TMDB.ImageBaseURL))
	enricher := enrich.New(catalogSvc, ytClient, loader, enrich.Options{
		Concurrency:   cfg.Enrich.Concurrency,
		ItemTimeout:   cfg.Enrich.ItemTimeout,
		QuotaFallback: cfg.YouTube.QuotaFallback,
		PopularLimit:  cfg.Enrich.PopularLimit,
		SearchLimit:   cfg.Enrich.SearchLimit,
	})

	handler := api.NewHandler(cfg, catalogSvc, enricher, ytClient, tmdbClient, resultCache)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCacheMaintenanceService(resultCache, cfg.Cache.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// errCh yields once, after every layer has stopped.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	// Closed only after the API layer has drained.
	if err := resultCache.Close(); err != nil {
		logging.Error().Err(err).Str("cache", resultCache.Name()).Msg("Failed to close cache")
	}

	logging.Info().Msg("CineMarathon stopped")
}
