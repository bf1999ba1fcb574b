// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package models

import (
	"math"
	"testing"
	"time"
)

func TestCandidateReleaseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date string
		want int
	}{
		{"1999-03-31", 1999},
		{"2010", 2010},
		{UnknownReleaseDate, 0},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		c := Candidate{ReleaseDate: tt.date}
		if got := c.ReleaseYear(); got != tt.want {
			t.Errorf("ReleaseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestCandidateHasAnyGenre(t *testing.T) {
	t.Parallel()

	c := Candidate{Genres: []string{"Drama", "Science Fiction"}}
	if !c.HasAnyGenre([]string{"science fiction"}) {
		t.Error("expected case-insensitive genre match")
	}
	if c.HasAnyGenre([]string{"Comedy", "Horror"}) {
		t.Error("unexpected genre match")
	}
	if c.HasAnyGenre(nil) {
		t.Error("empty genre list should never match")
	}
}

func TestNewEnrichedMovie(t *testing.T) {
	t.Parallel()

	c := Candidate{ID: 1, Title: "Heat", Rating: 8.3, Duration: 170}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	bare := NewEnrichedMovie(c, nil, at)
	if bare.Complete || bare.Trailer != nil {
		t.Error("movie without trailer must be incomplete")
	}
	if len(bare.Sources) != 1 || bare.Sources[0] != SourcePrimary {
		t.Errorf("Sources = %v, want [tmdb]", bare.Sources)
	}
	if !bare.UnifiedAt.Equal(at) {
		t.Errorf("UnifiedAt = %v", bare.UnifiedAt)
	}

	trailer := &TrailerRef{ID: "abc", Title: "Heat trailer"}
	full := NewEnrichedMovie(c, trailer, at)
	if !full.Complete || full.Trailer == nil || full.Trailer.ID != "abc" {
		t.Errorf("enriched = %+v", full)
	}
	if len(full.Sources) != 2 || full.Sources[1] != SourceSecondary {
		t.Errorf("Sources = %v, want [tmdb youtube]", full.Sources)
	}

	// the merged value owns its trailer
	trailer.ID = "mutated"
	if full.Trailer.ID != "abc" {
		t.Error("EnrichedMovie must not alias the caller's TrailerRef")
	}
}

func TestEnrichedMovieValid(t *testing.T) {
	t.Parallel()

	at := time.Now()
	tests := []struct {
		name string
		c    Candidate
		want bool
	}{
		{"valid", Candidate{ID: 1, Title: "A", Rating: 0}, true},
		{"no id", Candidate{Title: "A", Rating: 5}, false},
		{"no title", Candidate{ID: 1, Rating: 5}, false},
		{"undefined rating", Candidate{ID: 1, Title: "A", Rating: math.NaN()}, false},
	}
	for _, tt := range tests {
		if got := NewEnrichedMovie(tt.c, nil, at).Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
