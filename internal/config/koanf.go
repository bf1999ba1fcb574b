// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemarathon/config.yaml",
	"/etc/cinemarathon/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  20 * time.Second,
		},
		TMDB: TMDBConfig{
			APIKey:            "",
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			Language:          "en-US",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 20,
			MaxRetries:        3,
		},
		YouTube: YouTubeConfig{
			APIKey:            "", // optional
			BaseURL:           "https://www.googleapis.com/youtube/v3",
			MaxResults:        5,
			Timeout:           5 * time.Second,
			RequestsPerSecond: 5,
			MaxRetries:        1, // quota errors are never retried
			QuotaFallback:     true,
		},
		Cache: CacheConfig{
			Backend:       "memory",
			TTL:           time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Enrich: EnrichConfig{
			Concurrency:  5,
			ItemTimeout:  15 * time.Second,
			PopularLimit: 10,
			SearchLimit:  5,
		},
		Marathon: MarathonConfig{
			MinRating:    6.0,
			MaxCount:     10,
			SafetyCap:    60,
			PreferRecent: false,
			PopularPool:  5,
			ThematicPool: 10,
			DecadePool:   15,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with koanf v2 from three layers:
//  1. Built-in defaults
//  2. Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables (see envTransformFunc)
//
// Later layers override earlier ones. The result is validated before return.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	// Primary catalog
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_base_url":            "tmdb.base_url",
	"tmdb_image_base_url":      "tmdb.image_base_url",
	"tmdb_language":            "tmdb.language",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_requests_per_second": "tmdb.requests_per_second",
	"tmdb_max_retries":         "tmdb.max_retries",

	// Secondary video source
	"youtube_api_key":             "youtube.api_key",
	"youtube_base_url":            "youtube.base_url",
	"youtube_max_results":         "youtube.max_results",
	"youtube_timeout":             "youtube.timeout",
	"youtube_requests_per_second": "youtube.requests_per_second",
	"youtube_max_retries":         "youtube.max_retries",
	"youtube_quota_fallback":      "youtube.quota_fallback",

	// Cache
	"cache_backend":        "cache.backend",
	"cache_ttl":            "cache.ttl",
	"cache_sweep_interval": "cache.sweep_interval",

	// Enrichment
	"enrich_concurrency":   "enrich.concurrency",
	"enrich_item_timeout":  "enrich.item_timeout",
	"enrich_popular_limit": "enrich.popular_limit",
	"enrich_search_limit":  "enrich.search_limit",

	// Marathon
	"marathon_min_rating":    "marathon.min_rating",
	"marathon_max_count":     "marathon.max_count",
	"marathon_safety_cap":    "marathon.safety_cap",
	"marathon_prefer_recent": "marathon.prefer_recent",
	"marathon_popular_pool":  "marathon.popular_pool",
	"marathon_thematic_pool": "marathon.thematic_pool",
	"marathon_decade_pool":   "marathon.decade_pool",

	// Circuit breaker
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - CACHE_TTL -> cache.ttl
//   - ENRICH_CONCURRENCY -> enrich.concurrency
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
