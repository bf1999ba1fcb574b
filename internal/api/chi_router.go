// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package api serves the movie, marathon and video endpoints over chi.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/middleware"
)

// Router builds the HTTP handler tree.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router for handler using the server and security
// sections of cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:        handler,
		chiMiddleware:  NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)),
		requestTimeout: cfg.Server.RequestTimeout,
	}
}

// SetupChi configures all routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(router.chiMiddleware.RateLimitByIP())
	if router.requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(router.requestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", router.handler.Health)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/popular", router.handler.PopularMovies)
			r.Get("/popular/enriched", router.handler.PopularEnriched)
			r.Get("/top-rated", router.handler.TopRatedMovies)
			r.Get("/search", router.handler.SearchMovies)
			r.Get("/search/enriched", router.handler.SearchEnriched)
		})

		r.Route("/marathon", func(r chi.Router) {
			r.Post("/", router.handler.Marathon)
			r.Post("/thematic", router.handler.ThematicMarathon)
			r.Post("/decade", router.handler.DecadeMarathon)
			r.Get("/presets", router.handler.MarathonPresets)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/trailers", router.handler.Trailers)
			r.Get("/stats", router.handler.VideoStats)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
