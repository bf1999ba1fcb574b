// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package catalog turns raw primary-catalog records into Candidates and
// serves cached catalog lookups.
package catalog

import (
	"strings"

	"github.com/tomtom215/cinemarathon/internal/models"
)

// Image sizes used for poster and backdrop URLs.
const (
	PosterSize   = "w500"
	BackdropSize = "original"
)

// Normalizer maps raw records to Candidates. It performs no I/O.
type Normalizer struct {
	ImageBaseURL string
}

// NewNormalizer returns a Normalizer building image URLs under base.
func NewNormalizer(imageBaseURL string) Normalizer {
	return Normalizer{ImageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

func (n Normalizer) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return n.ImageBaseURL + "/" + size + path
}

// Normalize converts raw into a Candidate. An empty overview becomes
// models.PlaceholderOverview, an absent rating becomes 0 and an empty
// release date becomes models.UnknownReleaseDate. Slices are copied.
func (n Normalizer) Normalize(raw models.RawMovie) models.Candidate {
	c := models.Candidate{
		ID:            raw.ID,
		Title:         raw.Title,
		OriginalTitle: raw.OriginalTitle,
		Overview:      raw.Overview,
		PosterURL:     n.imageURL(PosterSize, raw.PosterPath),
		BackdropURL:   n.imageURL(BackdropSize, raw.BackdropPath),
		VoteCount:     raw.VoteCount,
		ReleaseDate:   raw.ReleaseDate,
		Duration:      raw.Runtime,
		Budget:        raw.Budget,
		Revenue:       raw.Revenue,
		Genres:        append([]string{}, raw.Genres...),
	}
	if strings.TrimSpace(c.Overview) == "" {
		c.Overview = models.PlaceholderOverview
	}
	if raw.VoteAverage != nil {
		c.Rating = *raw.VoteAverage
	}
	if c.ReleaseDate == "" {
		c.ReleaseDate = models.UnknownReleaseDate
	}
	if len(raw.Cast) > 0 {
		c.Cast = append([]models.CastMember(nil), raw.Cast...)
	}
	if len(raw.Videos) > 0 {
		c.Videos = append([]models.Video(nil), raw.Videos...)
	}
	return c
}

// NormalizeAll normalizes records that carry an identifier, preserving order.
func (n Normalizer) NormalizeAll(raws []models.RawMovie) []models.Candidate {
	out := make([]models.Candidate, 0, len(raws))
	for i := range raws {
		if raws[i].ID == 0 {
			continue
		}
		out = append(out, n.Normalize(raws[i]))
	}
	return out
}
