// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package tmdb is the primary catalog source adapter. It returns raw
// records in the catalog's own shape; normalization happens in catalog.
package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/models"
	"github.com/tomtom215/cinemarathon/internal/sources"
)

const (
	// SourceName labels the adapter in logs, metrics and the breaker.
	SourceName = "tmdb"

	// DetailFields is the append_to_response value of detail lookups.
	DetailFields = "credits,videos"

	// maxCast is the number of billed actors kept on a detail record.
	maxCast = 10
)

// DateRange bounds a discover query by primary release date (YYYY-MM-DD).
type DateRange struct {
	Start string
	End   string
}

// DecadeRange returns {decade}-01-01 .. {decade+9}-12-31.
func DecadeRange(decade int) DateRange {
	return DateRange{
		Start: fmt.Sprintf("%d-01-01", decade),
		End:   fmt.Sprintf("%d-12-31", decade+9),
	}
}

// DiscoverFilters are the quality filters applied to discover queries.
type DiscoverFilters struct {
	SortBy         string
	MinVoteAverage float64
	MinVoteCount   int
}

// DefaultDiscoverFilters returns popularity ordering with rating >= 6.0
// over at least 100 votes.
func DefaultDiscoverFilters() DiscoverFilters {
	return DiscoverFilters{
		SortBy:         "popularity.desc",
		MinVoteAverage: 6.0,
		MinVoteCount:   100,
	}
}

// Client talks to the TMDB v3 API.
type Client struct {
	transport *sources.Transport
	apiKey    string
	language  string
}

// NewClient creates a client with its own limiter and breaker.
func NewClient(cfg config.TMDBConfig, breaker config.BreakerConfig) *Client {
	return &Client{
		transport: sources.NewTransport(sources.Options{
			Name:              SourceName,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			MaxRetries:        cfg.MaxRetries,
			Breaker:           breaker,
		}),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
	}
}

// BreakerState reports the adapter's circuit breaker state.
func (c *Client) BreakerState() string {
	return c.transport.BreakerState()
}

func (c *Client) params(extra map[string]string) url.Values {
	v := url.Values{}
	v.Set("api_key", c.apiKey)
	if c.language != "" {
		v.Set("language", c.language)
	}
	for k, val := range extra {
		v.Set(k, val)
	}
	return v
}

func (c *Client) list(ctx context.Context, op, path string, extra map[string]string) ([]models.RawMovie, error) {
	var resp listResponse
	if err := c.transport.GetJSON(ctx, op, path, c.params(extra), &resp); err != nil {
		return nil, fmt.Errorf("tmdb %s: %w", op, err)
	}
	out := make([]models.RawMovie, 0, len(resp.Results))
	for i := range resp.Results {
		out = append(out, resp.Results[i].toRaw())
	}
	return out, nil
}

// Popular returns the first page of /movie/popular.
func (c *Client) Popular(ctx context.Context) ([]models.RawMovie, error) {
	return c.list(ctx, "popular", "/movie/popular", nil)
}

// TopRated returns the first page of /movie/top_rated.
func (c *Client) TopRated(ctx context.Context) ([]models.RawMovie, error) {
	return c.list(ctx, "top_rated", "/movie/top_rated", map[string]string{"page": "1"})
}

// Search queries /search/movie. An empty query returns no results without
// a network call.
func (c *Client) Search(ctx context.Context, query string) ([]models.RawMovie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.RawMovie{}, nil
	}
	return c.list(ctx, "search", "/search/movie", map[string]string{"query": query})
}

// Discover queries /discover/movie within a release date range.
func (c *Client) Discover(ctx context.Context, r DateRange, f DiscoverFilters) ([]models.RawMovie, error) {
	return c.list(ctx, "discover", "/discover/movie", map[string]string{
		"primary_release_date.gte": r.Start,
		"primary_release_date.lte": r.End,
		"sort_by":                  f.SortBy,
		"vote_average.gte":         strconv.FormatFloat(f.MinVoteAverage, 'f', 1, 64),
		"vote_count.gte":           strconv.Itoa(f.MinVoteCount),
	})
}

// Detail fetches /movie/{id} with credits and videos appended.
func (c *Client) Detail(ctx context.Context, id int64) (models.RawMovie, error) {
	var resp movieDetail
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.transport.GetJSON(ctx, "detail", path, c.params(map[string]string{"append_to_response": DetailFields}), &resp); err != nil {
		return models.RawMovie{}, fmt.Errorf("tmdb detail %d: %w", id, err)
	}
	return resp.toRaw(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (m *movieSummary) toRaw() models.RawMovie {
	return models.RawMovie{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		PosterPath:    deref(m.PosterPath),
		BackdropPath:  deref(m.BackdropPath),
		VoteAverage:   m.VoteAverage,
		VoteCount:     m.VoteCount,
		ReleaseDate:   m.ReleaseDate,
		Genres:        genreNames(m.GenreIDs),
	}
}

func (m *movieDetail) toRaw() models.RawMovie {
	raw := models.RawMovie{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		PosterPath:    deref(m.PosterPath),
		BackdropPath:  deref(m.BackdropPath),
		VoteAverage:   m.VoteAverage,
		VoteCount:     m.VoteCount,
		ReleaseDate:   m.ReleaseDate,
		Budget:        m.Budget,
		Revenue:       m.Revenue,
	}
	if m.Runtime != nil {
		raw.Runtime = *m.Runtime
	}

	raw.Genres = make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		raw.Genres = append(raw.Genres, g.Name)
	}

	cast := m.Credits.Cast
	if len(cast) > maxCast {
		cast = cast[:maxCast]
	}
	raw.Cast = make([]models.CastMember, 0, len(cast))
	for _, a := range cast {
		raw.Cast = append(raw.Cast, models.CastMember{Name: a.Name, Character: a.Character})
	}

	raw.Videos = make([]models.Video, 0, len(m.Videos.Results))
	for _, v := range m.Videos.Results {
		raw.Videos = append(raw.Videos, models.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type, Official: v.Official})
	}
	return raw
}
