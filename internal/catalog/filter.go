// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package catalog

import (
	"sort"

	"github.com/tomtom215/cinemarathon/internal/models"
)

// The filters below are order-preserving and never modify their input.

// Movie is satisfied by *models.Candidate and by pointers to types that embed
// a Candidate, such as *models.EnrichedMovie.
type Movie[T any] interface {
	*T
	Core() *models.Candidate
}

// IsValid reports whether c has an identifier, a title, a defined rating
// and a positive duration.
func IsValid(c *models.Candidate) bool {
	return c.ID != 0 && c.Title != "" && c.RatingDefined() && c.Duration > 0
}

// FilterValid drops structurally invalid movies.
func FilterValid[T any, PT Movie[T]](movies []T) []T {
	out := make([]T, 0, len(movies))
	for i := range movies {
		if IsValid(PT(&movies[i]).Core()) {
			out = append(out, movies[i])
		}
	}
	return out
}

// FilterByMinRating keeps movies rated at least threshold.
func FilterByMinRating[T any, PT Movie[T]](threshold float64, movies []T) []T {
	out := make([]T, 0, len(movies))
	for i := range movies {
		if PT(&movies[i]).Core().Rating >= threshold {
			out = append(out, movies[i])
		}
	}
	return out
}

// WithPoster keeps candidates that have a poster URL.
func WithPoster(candidates []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for i := range candidates {
		if candidates[i].PosterURL != "" {
			out = append(out, candidates[i])
		}
	}
	return out
}

// SortByRating returns a copy ordered by rating, highest first. Equal
// ratings keep their input order.
func SortByRating(candidates []models.Candidate) []models.Candidate {
	out := append([]models.Candidate(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
