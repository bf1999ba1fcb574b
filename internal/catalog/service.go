// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/cinemarathon/internal/cache"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/models"
	"github.com/tomtom215/cinemarathon/internal/sources/tmdb"
)

// Source is the primary catalog adapter.
type Source interface {
	Popular(ctx context.Context) ([]models.RawMovie, error)
	TopRated(ctx context.Context) ([]models.RawMovie, error)
	Search(ctx context.Context, query string) ([]models.RawMovie, error)
	Detail(ctx context.Context, id int64) (models.RawMovie, error)
	Discover(ctx context.Context, r tmdb.DateRange, f tmdb.DiscoverFilters) ([]models.RawMovie, error)
}

// Service serves normalized catalog lookups through the result cache.
// Flat lists drop records without a poster.
type Service struct {
	source     Source
	loader     *cache.Loader
	normalizer Normalizer
}

// NewService wires a source, a cache loader and a normalizer.
func NewService(source Source, loader *cache.Loader, normalizer Normalizer) *Service {
	return &Service{source: source, loader: loader, normalizer: normalizer}
}

// DetailKey is the cache key of a detail lookup.
func DetailKey(id int64) string {
	return cache.GenerateKey("tmdb.detail", map[string]interface{}{"id": id, "fields": tmdb.DetailFields})
}

func (s *Service) flat(ctx context.Context, key string, load func(context.Context) ([]models.RawMovie, error)) models.Result[[]models.Candidate] {
	return cache.Fetch(ctx, s.loader, key, func(ctx context.Context) ([]models.Candidate, error) {
		raws, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return WithPoster(s.normalizer.NormalizeAll(raws)), nil
	})
}

// Popular returns the popular list.
func (s *Service) Popular(ctx context.Context) models.Result[[]models.Candidate] {
	return s.flat(ctx, cache.GenerateKey("tmdb.popular", nil), s.source.Popular)
}

// TopRated returns the top rated list ordered by rating descending.
func (s *Service) TopRated(ctx context.Context) models.Result[[]models.Candidate] {
	res := s.flat(ctx, cache.GenerateKey("tmdb.top_rated", nil), s.source.TopRated)
	if !res.IsOK() {
		return res
	}
	return models.OK(SortByRating(res.Value()))
}

// Search runs a title search. A blank query yields an empty list.
func (s *Service) Search(ctx context.Context, query string) models.Result[[]models.Candidate] {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.OK([]models.Candidate{})
	}
	key := cache.GenerateKey("tmdb.search", map[string]interface{}{"query": query})
	return s.flat(ctx, key, func(ctx context.Context) ([]models.RawMovie, error) {
		return s.source.Search(ctx, query)
	})
}

// Discover returns movies released within r that pass f.
func (s *Service) Discover(ctx context.Context, r tmdb.DateRange, f tmdb.DiscoverFilters) models.Result[[]models.Candidate] {
	key := cache.GenerateKey("tmdb.discover", map[string]interface{}{
		"start":      r.Start,
		"end":        r.End,
		"sort_by":    f.SortBy,
		"min_rating": f.MinVoteAverage,
		"min_votes":  f.MinVoteCount,
	})
	return s.flat(ctx, key, func(ctx context.Context) ([]models.RawMovie, error) {
		return s.source.Discover(ctx, r, f)
	})
}

// DiscoverByDecade discovers a decade with the default filters.
func (s *Service) DiscoverByDecade(ctx context.Context, decade int) models.Result[[]models.Candidate] {
	return s.Discover(ctx, tmdb.DecadeRange(decade), tmdb.DefaultDiscoverFilters())
}

// Detail returns the detailed record for id. Records without a poster are
// kept: the poster only matters for flat lists.
func (s *Service) Detail(ctx context.Context, id int64) models.Result[models.Candidate] {
	return cache.Fetch(ctx, s.loader, DetailKey(id), func(ctx context.Context) (models.Candidate, error) {
		raw, err := s.source.Detail(ctx, id)
		if err != nil {
			return models.Candidate{}, err
		}
		if raw.ID == 0 {
			return models.Candidate{}, fmt.Errorf("detail %d: record has no identifier", id)
		}
		return s.normalizer.Normalize(raw), nil
	})
}

// FlatOrEmpty unwraps a list result, logging and folding a failure into an
// empty list.
func FlatOrEmpty(ctx context.Context, op string, res models.Result[[]models.Candidate]) []models.Candidate {
	if res.IsOK() {
		return res.Value()
	}
	logging.Ctx(ctx).Warn().Err(res.Err()).Str("operation", op).Msg("Catalog lookup failed, returning empty list")
	return []models.Candidate{}
}
