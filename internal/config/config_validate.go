// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validCacheBackends = map[string]bool{
	"memory": true,
	"badger": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateEnrich(); err != nil {
		return err
	}
	if err := c.validateMarathon(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if c.TMDB.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must not be negative")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if !c.YouTube.Enabled() {
		return nil
	}
	if err := validateHTTPURL(c.YouTube.BaseURL, "YOUTUBE_BASE_URL"); err != nil {
		return err
	}
	if c.YouTube.MaxResults < 1 || c.YouTube.MaxResults > 50 {
		return fmt.Errorf("YOUTUBE_MAX_RESULTS must be between 1 and 50")
	}
	if c.YouTube.Timeout <= 0 {
		return fmt.Errorf("YOUTUBE_TIMEOUT must be positive")
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		return fmt.Errorf("YOUTUBE_REQUESTS_PER_SECOND must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.SweepInterval < 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateEnrich() error {
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be at least 1")
	}
	if c.Enrich.ItemTimeout <= 0 {
		return fmt.Errorf("ENRICH_ITEM_TIMEOUT must be positive")
	}
	if c.Enrich.PopularLimit < 1 || c.Enrich.SearchLimit < 1 {
		return fmt.Errorf("ENRICH_POPULAR_LIMIT and ENRICH_SEARCH_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateMarathon() error {
	m := c.Marathon
	if m.MinRating < 0 || m.MinRating > 10 {
		return fmt.Errorf("MARATHON_MIN_RATING must be between 0 and 10")
	}
	if m.MaxCount < 1 {
		return fmt.Errorf("MARATHON_MAX_COUNT must be at least 1")
	}
	if m.SafetyCap < 1 {
		return fmt.Errorf("MARATHON_SAFETY_CAP must be at least 1")
	}
	if m.PopularPool < 1 || m.ThematicPool < 1 || m.DecadePool < 1 {
		return fmt.Errorf("marathon pool sizes must be at least 1")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks scheme and host. Paths are allowed since both
// upstream APIs are versioned by path.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
