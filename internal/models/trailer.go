// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package models

import "time"

// Source tags recorded on an EnrichedMovie.
const (
	SourcePrimary   = "tmdb"
	SourceSecondary = "youtube"
)

// TrailerRef points at a playable trailer on the video platform.
type TrailerRef struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	EmbedURL     string `json:"embed_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Channel      string `json:"channel,omitempty"`

	// Placeholder marks the quota-exhausted stand-in reference.
	Placeholder bool `json:"placeholder,omitempty"`
}

// VideoResult is a normalized secondary-source search hit.
type VideoResult struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Channel      string    `json:"channel,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	URL          string    `json:"url"`
	EmbedURL     string    `json:"embed_url"`
	Placeholder  bool      `json:"placeholder,omitempty"`
}

// TrailerRef converts a search hit into a trailer reference.
func (v VideoResult) TrailerRef() TrailerRef {
	return TrailerRef{
		ID:           v.ID,
		Title:        v.Title,
		URL:          v.URL,
		EmbedURL:     v.EmbedURL,
		ThumbnailURL: v.ThumbnailURL,
		Channel:      v.Channel,
		Placeholder:  v.Placeholder,
	}
}

// VideoStats holds engagement figures for a single video.
type VideoStats struct {
	VideoID         string `json:"video_id"`
	Views           int64  `json:"views"`
	Likes           int64  `json:"likes"`
	Comments        int64  `json:"comments"`
	DurationISO     string `json:"duration_iso,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
}
