// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package youtube is the secondary video source adapter. HTTP 403 is
// reported as sources.ErrQuotaExceeded; callers decide whether to fall back
// to FallbackVideo.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/models"
	"github.com/tomtom215/cinemarathon/internal/sources"
)

// SourceName labels the adapter in logs, metrics and the breaker.
const SourceName = "youtube"

const (
	defaultTrailerLimit = 3
	maxSearchResults    = 10
)

// ErrDisabled is returned by every lookup when no API key is configured.
var ErrDisabled = errors.New("youtube source disabled: no api key configured")

// Client talks to the YouTube Data API v3.
type Client struct {
	transport  *sources.Transport
	apiKey     string
	maxResults int
}

// NewClient creates a client. A client without an API key is valid but
// disabled.
func NewClient(cfg config.YouTubeConfig, breaker config.BreakerConfig) *Client {
	return &Client{
		transport: sources.NewTransport(sources.Options{
			Name:              SourceName,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			MaxRetries:        cfg.MaxRetries,
			Breaker:           breaker,
			ForbiddenIsQuota:  true,
		}),
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// BreakerState reports the adapter's circuit breaker state.
func (c *Client) BreakerState() string {
	if !c.Enabled() {
		return "disabled"
	}
	return c.transport.BreakerState()
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	params.Set("key", c.apiKey)
	err := c.transport.GetJSON(ctx, op, path, params, out)
	switch {
	case err == nil:
		return nil
	case sources.IsQuotaExceeded(err):
		logging.Ctx(ctx).Warn().Str("endpoint", op).Msg("YouTube quota exceeded")
	case sources.IsNotFound(err):
		logging.Ctx(ctx).Debug().Str("endpoint", op).Msg("YouTube resource not found")
	default:
		logging.Ctx(ctx).Error().Err(err).Str("endpoint", op).Msg("YouTube request failed")
	}
	return fmt.Errorf("youtube %s: %w", op, err)
}

// Search runs a video search and returns normalized results in relevance
// order, unfiltered.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.VideoResult, error) {
	return c.search(ctx, query, maxResults, false)
}

func (c *Client) search(ctx context.Context, query string, maxResults int, byRelevance bool) ([]models.VideoResult, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if byRelevance {
		params.Set("order", "relevance")
	}

	var resp searchResponse
	if err := c.get(ctx, "search", "/search", params, &resp); err != nil {
		return nil, err
	}

	out := make([]models.VideoResult, 0, len(resp.Items))
	for i := range resp.Items {
		if v, ok := normalizeVideo(&resp.Items[i]); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// SearchTrailer returns the first trailer-like result for a movie, or nil
// when nothing matches. year <= 0 is omitted from the query.
func (c *Client) SearchTrailer(ctx context.Context, title string, year int) (*models.VideoResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	query := title + " official trailer"
	if year > 0 {
		query = fmt.Sprintf("%s %d official trailer", title, year)
	}

	videos, err := c.search(ctx, query, c.maxResults, true)
	if err != nil {
		return nil, err
	}
	for i := range videos {
		if LooksLikeTrailer(videos[i].Title) {
			v := videos[i]
			return &v, nil
		}
	}
	return nil, nil
}

// SearchTrailers returns up to limit trailer-like results (default 3).
func (c *Client) SearchTrailers(ctx context.Context, title string, limit int) ([]models.VideoResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return []models.VideoResult{}, nil
	}
	if limit <= 0 {
		limit = defaultTrailerLimit
	}

	videos, err := c.search(ctx, title+" official trailer", min(limit*2, maxSearchResults), false)
	if err != nil {
		return nil, err
	}

	out := make([]models.VideoResult, 0, limit)
	for _, v := range videos {
		if len(out) == limit {
			break
		}
		if LooksLikeTrailer(v.Title) {
			out = append(out, v)
		}
	}
	return out, nil
}

// VideoStats returns statistics for a video, or nil when the id is unknown.
// The fallback placeholder is never looked up.
func (c *Client) VideoStats(ctx context.Context, videoID string) (*models.VideoStats, error) {
	if videoID == "" || videoID == FallbackID {
		return nil, nil
	}

	params := url.Values{}
	params.Set("part", "statistics,contentDetails")
	params.Set("id", videoID)

	var resp videosResponse
	if err := c.get(ctx, "videos", "/videos", params, &resp); err != nil {
		if sources.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	return &models.VideoStats{
		VideoID:         videoID,
		Views:           parseCount(item.Statistics.ViewCount),
		Likes:           parseCount(item.Statistics.LikeCount),
		Comments:        parseCount(item.Statistics.CommentCount),
		DurationISO:     item.ContentDetails.Duration,
		DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
	}, nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// normalizeVideo maps a search item. Items without a video id (channels,
// playlists) are skipped.
func normalizeVideo(item *searchItem) (models.VideoResult, bool) {
	id := item.ID.VideoID
	if id == "" {
		return models.VideoResult{}, false
	}

	thumb := ""
	switch {
	case item.Snippet.Thumbnails.High != nil && item.Snippet.Thumbnails.High.URL != "":
		thumb = item.Snippet.Thumbnails.High.URL
	case item.Snippet.Thumbnails.Default != nil:
		thumb = item.Snippet.Thumbnails.Default.URL
	}

	published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

	return models.VideoResult{
		ID:           id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ThumbnailURL: thumb,
		Channel:      item.Snippet.ChannelTitle,
		PublishedAt:  published,
		URL:          WatchURL(id),
		EmbedURL:     EmbedURL(id),
	}, true
}
