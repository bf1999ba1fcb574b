// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/cinemarathon/internal/models"
)

const (
	// FallbackID identifies the quota placeholder. It is never looked up.
	FallbackID = "fallback_quota"

	fallbackTitle     = "Trailer unavailable (YouTube quota exhausted)"
	fallbackDesc      = "The daily YouTube request quota has been reached."
	fallbackChannel   = "CineMarathon System"
	fallbackThumbnail = "https://via.placeholder.com/640x360?text=Trailer+Unavailable"
	fallbackVideoKey  = "EngW7tLk6R8"
)

// Video URL patterns.
const (
	watchURLFormat     = "https://www.youtube.com/watch?v=%s"
	embedURLFormat     = "https://www.youtube.com/embed/%s"
	thumbnailURLFormat = "https://img.youtube.com/vi/%s/hqdefault.jpg"
)

// WatchURL returns the canonical watch URL of a video key.
func WatchURL(key string) string { return fmt.Sprintf(watchURLFormat, key) }

// EmbedURL returns the embeddable URL of a video key.
func EmbedURL(key string) string { return fmt.Sprintf(embedURLFormat, key) }

// ThumbnailURL returns the high-quality thumbnail URL of a video key.
func ThumbnailURL(key string) string { return fmt.Sprintf(thumbnailURLFormat, key) }

// FallbackVideo is the labeled stand-in returned when the quota is exhausted.
func FallbackVideo() models.VideoResult {
	return models.VideoResult{
		ID:           FallbackID,
		Title:        fallbackTitle,
		Description:  fallbackDesc,
		ThumbnailURL: fallbackThumbnail,
		Channel:      fallbackChannel,
		URL:          WatchURL(fallbackVideoKey),
		EmbedURL:     EmbedURL(fallbackVideoKey),
		Placeholder:  true,
	}
}

// FallbackTrailer is FallbackVideo as a trailer reference.
func FallbackTrailer() models.TrailerRef {
	return FallbackVideo().TrailerRef()
}

// trailerKeywords mark a result title as trailer-like.
var trailerKeywords = []string{"trailer", "official", "tráiler", "oficial", "teaser", "hd", "4k"}

// LooksLikeTrailer reports whether a video title contains a trailer keyword.
func LooksLikeTrailer(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range trailerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO-8601 time duration ("PT1H2M3S") to
// seconds. Empty or malformed input gives 0.
func ParseISODuration(s string) int {
	if s == "" {
		return 0
	}
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}
