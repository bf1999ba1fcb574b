// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package models

import "time"

// EnrichedMovie is a Candidate merged with an optional trailer.
// Values are built once by NewEnrichedMovie and not modified afterwards.
type EnrichedMovie struct {
	Candidate

	Trailer   *TrailerRef `json:"trailer"`
	Sources   []string    `json:"sources"`
	Complete  bool        `json:"complete"`
	UnifiedAt time.Time   `json:"unified_at"`
}

// NewEnrichedMovie merges a candidate with an optional trailer. The secondary
// source tag and the completeness flag are set iff trailer is non-nil.
//
//nolint:gocritic // Candidate is copied on purpose
func NewEnrichedMovie(c Candidate, trailer *TrailerRef, at time.Time) EnrichedMovie {
	m := EnrichedMovie{
		Candidate: c,
		Sources:   []string{SourcePrimary},
		UnifiedAt: at.UTC(),
	}
	if trailer != nil {
		t := *trailer
		m.Trailer = &t
		m.Sources = append(m.Sources, SourceSecondary)
		m.Complete = true
	}
	return m
}

// Valid reports whether the merged record has an identifier, a title and a rating.
func (m EnrichedMovie) Valid() bool {
	return m.ID != 0 && m.Title != "" && m.RatingDefined()
}
