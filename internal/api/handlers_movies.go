// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinemarathon/internal/enrich"
	"github.com/tomtom215/cinemarathon/internal/models"
)

// MovieList is the payload of the flat list endpoints.
type MovieList struct {
	Count  int                `json:"count"`
	Movies []models.Candidate `json:"movies"`
}

// EnrichedMovieList is the payload of the enriched list endpoints.
type EnrichedMovieList struct {
	Count  int                     `json:"count"`
	Movies []models.EnrichedMovie  `json:"movies"`
	Stats  models.UnificationStats `json:"stats"`
}

// PopularMovies handles GET /api/v1/movies/popular.
//
// @Summary Popular movies
// @Description Returns the current popular movies from the primary catalog, normalized and without entries lacking a poster.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=MovieList}
// @Failure 502 {object} models.APIResponse "Catalog unavailable"
// @Router /movies/popular [get]
func (h *Handler) PopularMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.respondFlat(w, r, start, h.catalog.Popular(r.Context()))
}

// TopRatedMovies handles GET /api/v1/movies/top-rated.
//
// @Summary Top rated movies
// @Description Returns top rated movies ordered by rating, highest first.
// @Tags Movies
// @Produce json
// @Success 200 {object} models.APIResponse{data=MovieList}
// @Failure 502 {object} models.APIResponse "Catalog unavailable"
// @Router /movies/top-rated [get]
func (h *Handler) TopRatedMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.respondFlat(w, r, start, h.catalog.TopRated(r.Context()))
}

// SearchMovies handles GET /api/v1/movies/search.
//
// @Summary Search movies
// @Tags Movies
// @Produce json
// @Param q query string true "Search term (1-200 characters)"
// @Success 200 {object} models.APIResponse{data=MovieList}
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Failure 502 {object} models.APIResponse "Catalog unavailable"
// @Router /movies/search [get]
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: defaultSearchLimit,
	}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}
	h.respondFlat(w, r, start, h.catalog.Search(r.Context(), req.Query))
}

func (h *Handler) respondFlat(w http.ResponseWriter, r *http.Request, start time.Time, res models.Result[[]models.Candidate]) {
	movies, err := res.Unpack()
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Movie catalog is unavailable", err)
		return
	}
	respondSuccess(w, start, MovieList{Count: len(movies), Movies: movies})
}

// PopularEnriched handles GET /api/v1/movies/popular/enriched.
//
// @Summary Popular movies with trailers
// @Description Enriches the first limit popular movies with a trailer and reports how complete the unified records are. Per-movie failures are left out of the list.
// @Tags Movies
// @Produce json
// @Param limit query int false "Number of movies (1-50)" default(5)
// @Success 200 {object} models.APIResponse{data=EnrichedMovieList}
// @Failure 400 {object} models.APIResponse "Invalid limit"
// @Router /movies/popular/enriched [get]
func (h *Handler) PopularEnriched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, verr := getIntParam(r, "limit", defaultEnrichedLimit)
	if verr != nil {
		respondValidationError(w, verr)
		return
	}
	req := LimitRequest{Limit: limit}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movies := h.enricher.PopularEnriched(r.Context(), req.Limit)
	respondSuccess(w, start, newEnrichedMovieList(movies))
}

// SearchEnriched handles GET /api/v1/movies/search/enriched.
//
// @Summary Search movies with trailers
// @Tags Movies
// @Produce json
// @Param q query string true "Search term (1-200 characters)"
// @Param limit query int false "Number of movies (1-50)" default(3)
// @Success 200 {object} models.APIResponse{data=EnrichedMovieList}
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Router /movies/search/enriched [get]
func (h *Handler) SearchEnriched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, verr := getIntParam(r, "limit", defaultSearchLimit)
	if verr != nil {
		respondValidationError(w, verr)
		return
	}
	req := SearchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: limit,
	}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movies := h.enricher.SearchEnriched(r.Context(), req.Query, req.Limit)
	respondSuccess(w, start, newEnrichedMovieList(movies))
}

func newEnrichedMovieList(movies []models.EnrichedMovie) EnrichedMovieList {
	if movies == nil {
		movies = []models.EnrichedMovie{}
	}
	return EnrichedMovieList{
		Count:  len(movies),
		Movies: movies,
		Stats:  enrich.AnalyzeUnification(movies),
	}
}
