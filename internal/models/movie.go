// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package models defines the catalog, enrichment and planning types shared
// across CineMarathon, plus the HTTP response envelope.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// PlaceholderOverview replaces an empty catalog overview.
	PlaceholderOverview = "No description available"

	// UnknownReleaseDate is the sentinel used when a record has no release date.
	UnknownReleaseDate = "unknown"

	// releaseDateLayout is the catalog's date format.
	releaseDateLayout = "2006-01-02"
)

// RawMovie is a primary-catalog record as delivered by the source adapter,
// before normalization. Fields keep the catalog's own shape: relative image
// paths, an optional rating and an optional runtime.
type RawMovie struct {
	ID            int64
	Title         string
	OriginalTitle string
	Overview      string
	PosterPath    string
	BackdropPath  string
	VoteAverage   *float64
	VoteCount     int
	ReleaseDate   string
	Runtime       int
	Genres        []string
	Videos        []Video
	Cast          []CastMember
	Budget        int64
	Revenue       int64
}

// Video is an entry of a catalog record's embedded video list.
type Video struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// CastMember is a billed actor.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// Candidate is a normalized movie eligible for enrichment and optimization.
//
// A Candidate with Duration <= 0, an empty title, a zero ID or an undefined
// (NaN) rating is structurally invalid and is dropped by the optimizer's
// input stage.
type Candidate struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	OriginalTitle string       `json:"original_title,omitempty"`
	Overview      string       `json:"overview"`
	PosterURL     string       `json:"poster_url,omitempty"`
	BackdropURL   string       `json:"backdrop_url,omitempty"`
	Rating        float64      `json:"rating"`
	VoteCount     int          `json:"vote_count"`
	ReleaseDate   string       `json:"release_date"`
	Duration      int          `json:"duration_minutes"`
	Genres        []string     `json:"genres"`
	Cast          []CastMember `json:"cast,omitempty"`
	Videos        []Video      `json:"videos,omitempty"`
	Budget        int64        `json:"budget,omitempty"`
	Revenue       int64        `json:"revenue,omitempty"`
}

// Core returns the candidate itself. Types embedding a Candidate inherit it,
// which lets catalog filters run over any pipeline stage.
func (c *Candidate) Core() *Candidate {
	return c
}

// RatingDefined reports whether the rating carries a value.
func (c Candidate) RatingDefined() bool {
	return !math.IsNaN(c.Rating)
}

// Released parses the release date. ok is false for the unknown sentinel
// or a malformed date.
func (c Candidate) Released() (t time.Time, ok bool) {
	if c.ReleaseDate == "" || c.ReleaseDate == UnknownReleaseDate {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseDateLayout, c.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ReleaseYear returns the release year, or 0 when unknown. A bare
// "YYYY" prefix is accepted for partially dated records.
func (c Candidate) ReleaseYear() int {
	if t, ok := c.Released(); ok {
		return t.Year()
	}
	if len(c.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(c.ReleaseDate[:4]); err == nil {
			return y
		}
	}
	return 0
}

// HasAnyGenre reports whether the candidate shares at least one genre with
// genres. Comparison is case-insensitive.
func (c Candidate) HasAnyGenre(genres []string) bool {
	for _, have := range c.Genres {
		for _, want := range genres {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
