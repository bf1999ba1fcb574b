// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package config loads CineMarathon configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	YouTube  YouTubeConfig  `koanf:"youtube"`
	Cache    CacheConfig    `koanf:"cache"`
	Enrich   EnrichConfig   `koanf:"enrich"`
	Marathon MarathonConfig `koanf:"marathon"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds a single API request, including enrichment fan-out.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TMDBConfig configures the primary catalog source.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	MaxRetries        int           `koanf:"max_retries"`
}

// YouTubeConfig configures the secondary video source.
// An empty APIKey disables the source; enrichment then relies on embedded trailers only.
type YouTubeConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	MaxResults        int           `koanf:"max_results"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	MaxRetries        int           `koanf:"max_retries"`

	// QuotaFallback substitutes a labelled placeholder trailer when the
	// daily quota is exhausted instead of leaving the trailer empty.
	QuotaFallback bool `koanf:"quota_fallback"`
}

// Enabled reports whether the secondary source has credentials.
func (y YouTubeConfig) Enabled() bool {
	return y.APIKey != ""
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Backend is "memory" (default) or "badger" (in-memory badger store).
	Backend       string        `koanf:"backend"`
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// EnrichConfig configures the enrichment orchestrator.
type EnrichConfig struct {
	Concurrency  int           `koanf:"concurrency"`
	ItemTimeout  time.Duration `koanf:"item_timeout"`
	PopularLimit int           `koanf:"popular_limit"`
	SearchLimit  int           `koanf:"search_limit"`
}

// MarathonConfig holds optimizer defaults and the candidate pool sizes used
// by the marathon endpoints.
type MarathonConfig struct {
	MinRating    float64 `koanf:"min_rating"`
	MaxCount     int     `koanf:"max_count"`
	SafetyCap    int     `koanf:"safety_cap"`
	PreferRecent bool    `koanf:"prefer_recent"`

	PopularPool  int `koanf:"popular_pool"`
	ThematicPool int `koanf:"thematic_pool"`
	DecadePool   int `koanf:"decade_pool"`
}

// BreakerConfig configures the per-source circuit breakers.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds inbound request protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load loads configuration. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
