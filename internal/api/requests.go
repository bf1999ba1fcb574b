// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

// Default list sizes for query parameters.
const (
	defaultEnrichedLimit = 5
	defaultSearchLimit   = 3
	defaultTrailerLimit  = 3
)

// SearchRequest is the query of the search endpoints.
type SearchRequest struct {
	Query string `json:"q" validate:"required,min=1,max=200"`
	Limit int    `json:"limit" validate:"min=1,max=50"`
}

// LimitRequest is the query of the popular enriched endpoint.
type LimitRequest struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

// MarathonRequest is the body of POST /api/v1/marathon.
type MarathonRequest struct {
	BudgetMinutes int      `json:"budget_minutes" validate:"required,min=1,max=1440"`
	MinRating     *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	MaxCount      *int     `json:"max_count,omitempty" validate:"omitempty,min=1,max=60"`
	PreferRecent  bool     `json:"prefer_recent"`
}

// ThematicRequest is the body of POST /api/v1/marathon/thematic.
type ThematicRequest struct {
	BudgetMinutes int      `json:"budget_minutes" validate:"required,min=1,max=1440"`
	Genres        []string `json:"genres" validate:"required,min=1,dive,required,max=50"`
}

// DecadeRequest is the body of POST /api/v1/marathon/decade.
type DecadeRequest struct {
	BudgetMinutes int `json:"budget_minutes" validate:"required,min=1,max=1440"`
	Decade        int `json:"decade" validate:"required,min=1900,max=2030,decade"`
}

// TrailersRequest is the query of GET /api/v1/videos/trailers.
type TrailersRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Limit int    `json:"limit" validate:"min=1,max=10"`
}

// VideoStatsRequest is the query of GET /api/v1/videos/stats.
type VideoStatsRequest struct {
	ID string `json:"id" validate:"required,max=64"`
}
