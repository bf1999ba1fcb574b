// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package metrics holds the Prometheus instrumentation for CineMarathon.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instrumented areas:
// - API endpoint latency and throughput
// - Result cache efficiency
// - Outbound source calls, retries and quota exhaustion
// - Circuit breaker state
// - Enrichment batches and marathon planning

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache"},
	)

	CacheHitRatio = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_hit_ratio_percent",
			Help: "Cache hit rate as a percentage of lookups",
		},
		[]string{"cache"},
	)

	// Source Metrics
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_requests_total",
			Help: "Total number of outbound requests to external sources",
		},
		[]string{"source", "endpoint", "outcome"}, // outcome: success, error, quota, rejected
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_request_duration_seconds",
			Help:    "Latency of outbound source requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source", "endpoint"},
	)

	SourceRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_retries_total",
			Help: "Total number of retries after HTTP 429 responses",
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Enrichment Metrics
	EnrichmentBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_batches_total",
			Help: "Total number of enrichment batches run",
		},
	)

	EnrichmentItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_items_total",
			Help: "Enrichment outcomes per item",
		},
		[]string{"outcome"}, // enriched, dropped
	)

	EnrichmentTrailers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_trailers_total",
			Help: "Where an item's trailer came from",
		},
		[]string{"origin"}, // embedded, search, fallback, none
	)

	EnrichmentInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrichment_in_flight",
			Help: "Number of enrichment operations currently holding a concurrency slot",
		},
	)

	EnrichmentBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_batch_duration_seconds",
			Help:    "Wall time of an enrichment batch",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Marathon Metrics
	MarathonPlans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marathon_plans_total",
			Help: "Total number of marathon plans computed",
		},
		[]string{"variant", "result"}, // variant: standard, thematic, decade; result: planned, empty
	)

	MarathonSelected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marathon_selected_movies",
			Help:    "Number of movies selected per plan",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 15},
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordCacheEvictions records n TTL evictions.
func RecordCacheEvictions(cache string, n int) {
	if n > 0 {
		CacheEvictions.WithLabelValues(cache).Add(float64(n))
	}
}

// SetCacheStats publishes the current size and hit rate of a cache.
func SetCacheStats(cache string, entries int, hitRate float64) {
	CacheSize.WithLabelValues(cache).Set(float64(entries))
	CacheHitRatio.WithLabelValues(cache).Set(hitRate)
}

// RecordSourceRequest records one outbound source call.
func RecordSourceRequest(source, endpoint, outcome string, duration time.Duration) {
	SourceRequestsTotal.WithLabelValues(source, endpoint, outcome).Inc()
	SourceRequestDuration.WithLabelValues(source, endpoint).Observe(duration.Seconds())
}

// RecordSourceRetry records a retry after a 429 response.
func RecordSourceRetry(source string) {
	SourceRetries.WithLabelValues(source).Inc()
}

// RecordEnrichmentBatch records the outcome counts of one batch.
func RecordEnrichmentBatch(enriched, dropped int, duration time.Duration) {
	EnrichmentBatches.Inc()
	EnrichmentItems.WithLabelValues("enriched").Add(float64(enriched))
	EnrichmentItems.WithLabelValues("dropped").Add(float64(dropped))
	EnrichmentBatchDuration.Observe(duration.Seconds())
}

// RecordTrailerOrigin records where an enriched item's trailer came from.
func RecordTrailerOrigin(origin string) {
	EnrichmentTrailers.WithLabelValues(origin).Inc()
}

// RecordMarathonPlan records a computed plan.
func RecordMarathonPlan(variant string, selected int) {
	result := "planned"
	if selected == 0 {
		result = "empty"
	}
	MarathonPlans.WithLabelValues(variant, result).Inc()
	MarathonSelected.Observe(float64(selected))
}
