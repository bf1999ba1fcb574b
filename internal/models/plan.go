// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package models

// Plan is the optimizer's output. Movies are in selection order.
// TotalDuration never exceeds Budget.
type Plan struct {
	Movies        []EnrichedMovie `json:"movies"`
	TotalDuration int             `json:"total_duration_minutes"`
	Budget        int             `json:"budget_minutes"`
	Remaining     int             `json:"remaining_minutes"`
	AverageRating float64         `json:"average_rating"`
	Count         int             `json:"count"`
	Description   string          `json:"description"`
}

// Empty reports whether nothing was selected.
func (p Plan) Empty() bool {
	return len(p.Movies) == 0
}

// Quality labels used by Report.
const (
	QualityExcellent = "Excellent"
	QualityGood      = "Good"
)

// Report summarizes a Plan.
type Report struct {
	// TimeUtilization is TotalDuration/Budget, 0 when the budget is 0.
	TimeUtilization    float64 `json:"time_utilization"`
	UtilizationPercent string  `json:"utilization_percent"`
	ExcellentCount     int     `json:"excellent_count"`
	FreeTime           string  `json:"free_time"`
	Quality            string  `json:"quality"`
}

// UnificationStats describes how complete a batch of enriched movies is.
// Rates are percentages rounded to one decimal.
type UnificationStats struct {
	Total        int     `json:"total"`
	WithTrailer  int     `json:"with_trailer"`
	WithOverview int     `json:"with_overview"`
	WithGenres   int     `json:"with_genres"`
	TrailerRate  float64 `json:"trailer_rate"`
	OverviewRate float64 `json:"overview_rate"`
	GenreRate    float64 `json:"genre_rate"`
	Completeness float64 `json:"completeness"`
}
