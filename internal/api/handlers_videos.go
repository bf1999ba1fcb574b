// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/models"
	"github.com/tomtom215/cinemarathon/internal/sources"
	"github.com/tomtom215/cinemarathon/internal/sources/youtube"
)

// TrailerList is the payload of GET /api/v1/videos/trailers.
type TrailerList struct {
	Count    int                  `json:"count"`
	Trailers []models.VideoResult `json:"trailers"`
	// Fallback is set when the list is the quota placeholder.
	Fallback bool `json:"fallback"`
}

// Trailers handles GET /api/v1/videos/trailers.
//
// @Summary Search trailers
// @Description Searches the video source for trailer-like videos. When the daily quota is exhausted and the fallback is enabled, a single placeholder is returned.
// @Tags Videos
// @Produce json
// @Param title query string true "Movie title"
// @Param limit query int false "Number of trailers (1-10)" default(3)
// @Success 200 {object} models.APIResponse{data=TrailerList}
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Failure 429 {object} models.APIResponse "Video quota exhausted"
// @Failure 503 {object} models.APIResponse "Video source disabled"
// @Router /videos/trailers [get]
func (h *Handler) Trailers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, verr := getIntParam(r, "limit", defaultTrailerLimit)
	if verr != nil {
		respondValidationError(w, verr)
		return
	}
	req := TrailersRequest{
		Title: strings.TrimSpace(r.URL.Query().Get("title")),
		Limit: limit,
	}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if !h.videos.Enabled() {
		respondError(w, r, http.StatusServiceUnavailable, "SOURCE_DISABLED", "Video source is not configured", nil)
		return
	}

	trailers, err := h.videos.SearchTrailers(r.Context(), req.Title, req.Limit)
	switch {
	case err == nil:
		respondSuccess(w, start, TrailerList{Count: len(trailers), Trailers: trailers})
	case sources.IsQuotaExceeded(err) && h.config.YouTube.QuotaFallback:
		logging.Ctx(r.Context()).Warn().Str("title", sanitizeLogValue(req.Title)).Msg("Video quota exhausted, serving fallback trailer")
		respondSuccess(w, start, TrailerList{
			Count:    1,
			Trailers: []models.VideoResult{youtube.FallbackVideo()},
			Fallback: true,
		})
	case sources.IsQuotaExceeded(err):
		respondError(w, r, http.StatusTooManyRequests, "QUOTA_EXCEEDED", "Video source quota exhausted, try again later", err)
	default:
		h.respondVideoError(w, r, err)
	}
}

// VideoStats handles GET /api/v1/videos/stats.
//
// @Summary Video statistics
// @Tags Videos
// @Produce json
// @Param id query string true "Video id"
// @Success 200 {object} models.APIResponse{data=models.VideoStats}
// @Failure 400 {object} models.APIResponse "Missing id"
// @Failure 404 {object} models.APIResponse "Unknown video"
// @Failure 503 {object} models.APIResponse "Video source disabled"
// @Router /videos/stats [get]
func (h *Handler) VideoStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := VideoStatsRequest{ID: strings.TrimSpace(r.URL.Query().Get("id"))}
	if verr := validateRequest(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if !h.videos.Enabled() {
		respondError(w, r, http.StatusServiceUnavailable, "SOURCE_DISABLED", "Video source is not configured", nil)
		return
	}

	stats, err := h.videos.VideoStats(r.Context(), req.ID)
	if err != nil {
		if sources.IsQuotaExceeded(err) {
			respondError(w, r, http.StatusTooManyRequests, "QUOTA_EXCEEDED", "Video source quota exhausted, try again later", err)
			return
		}
		h.respondVideoError(w, r, err)
		return
	}
	if stats == nil {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Video not found", nil)
		return
	}
	respondSuccess(w, start, stats)
}

func (h *Handler) respondVideoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, youtube.ErrDisabled) {
		respondError(w, r, http.StatusServiceUnavailable, "SOURCE_DISABLED", "Video source is not configured", nil)
		return
	}
	respondError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Video source is unavailable", err)
}
