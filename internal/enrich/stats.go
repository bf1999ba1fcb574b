// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package enrich

import (
	"math"
	"strings"

	"github.com/tomtom215/cinemarathon/internal/models"
)

// AnalyzeUnification reports how complete a set of enriched movies is.
func AnalyzeUnification(movies []models.EnrichedMovie) models.UnificationStats {
	total := len(movies)
	if total == 0 {
		return models.UnificationStats{}
	}

	stats := models.UnificationStats{Total: total}
	for i := range movies {
		m := &movies[i]
		if m.Trailer != nil {
			stats.WithTrailer++
		}
		if o := strings.TrimSpace(m.Overview); o != "" && o != models.PlaceholderOverview {
			stats.WithOverview++
		}
		if len(m.Genres) > 0 {
			stats.WithGenres++
		}
	}

	stats.TrailerRate = percent(stats.WithTrailer, total)
	stats.OverviewRate = percent(stats.WithOverview, total)
	stats.GenreRate = percent(stats.WithGenres, total)
	stats.Completeness = percent(stats.WithTrailer+stats.WithOverview+stats.WithGenres, total*3)
	return stats
}

func percent(n, d int) float64 {
	return math.Round(float64(n)/float64(d)*1000) / 10
}
