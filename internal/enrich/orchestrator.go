// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package enrich merges primary catalog records with trailer references
// from the secondary video source.
//
// Each identifier in a batch is fetched, matched with a trailer and merged
// into a models.EnrichedMovie. At most Options.Concurrency items are in
// flight at once. A failed detail fetch or an invalid merge drops that item
// only; a failed trailer lookup leaves the trailer absent. Batch results are
// returned in completion order, not input order.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tomtom215/cinemarathon/internal/cache"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/metrics"
	"github.com/tomtom215/cinemarathon/internal/models"
	"github.com/tomtom215/cinemarathon/internal/sources"
	"github.com/tomtom215/cinemarathon/internal/sources/youtube"
)

// Catalog is the primary catalog lookup used by the orchestrator.
type Catalog interface {
	Popular(ctx context.Context) models.Result[[]models.Candidate]
	Search(ctx context.Context, query string) models.Result[[]models.Candidate]
	Detail(ctx context.Context, id int64) models.Result[models.Candidate]
}

// VideoSource is the secondary trailer search.
type VideoSource interface {
	Enabled() bool
	SearchTrailer(ctx context.Context, title string, year int) (*models.VideoResult, error)
}

// Trailer origins, as reported to metrics.
const (
	OriginEmbedded = "embedded"
	OriginSearch   = "search"
	OriginFallback = "fallback"
	OriginNone     = "none"
)

// Options tunes the orchestrator.
type Options struct {
	Concurrency   int
	ItemTimeout   time.Duration
	QuotaFallback bool
	PopularLimit  int
	SearchLimit   int
}

// DefaultOptions returns concurrency 5, a 15s item timeout, quota fallback
// on and list limits 10 (popular) and 5 (search).
func DefaultOptions() Options {
	return Options{
		Concurrency:   5,
		ItemTimeout:   15 * time.Second,
		QuotaFallback: true,
		PopularLimit:  10,
		SearchLimit:   5,
	}
}

// Orchestrator runs enrichment batches.
type Orchestrator struct {
	catalog Catalog
	videos  VideoSource
	loader  *cache.Loader
	opts    Options
	now     func() time.Time
}

// New creates an Orchestrator. Zero option fields take their defaults.
func New(catalog Catalog, videos VideoSource, loader *cache.Loader, opts Options) *Orchestrator {
	def := DefaultOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = def.Concurrency
	}
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = def.ItemTimeout
	}
	if opts.PopularLimit <= 0 {
		opts.PopularLimit = def.PopularLimit
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = def.SearchLimit
	}
	return &Orchestrator{
		catalog: catalog,
		videos:  videos,
		loader:  loader,
		opts:    opts,
		now:     time.Now,
	}
}

type outcome struct {
	movie models.EnrichedMovie
	ok    bool
}

// EnrichBatch enriches every identifier. Cancelling ctx stops admitting new
// items and aborts in-flight lookups; whatever completed is returned.
func (o *Orchestrator) EnrichBatch(ctx context.Context, ids []int64) []models.EnrichedMovie {
	if len(ids) == 0 {
		return []models.EnrichedMovie{}
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	start := time.Now()

	sem := semaphore.NewWeighted(int64(o.opts.Concurrency))
	results := make(chan outcome, len(ids))
	var wg sync.WaitGroup

	admitted := 0
	for _, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("admitted", admitted).Int("requested", len(ids)).
				Msg("Enrichment batch cancelled before all items were admitted")
			break
		}
		admitted++
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer sem.Release(1)
			results <- o.runItem(ctx, id)
		}(id)
	}

	wg.Wait()
	close(results)

	enriched := make([]models.EnrichedMovie, 0, len(ids))
	for r := range results {
		if r.ok {
			enriched = append(enriched, r.movie)
		}
	}

	failed := len(ids) - len(enriched)
	metrics.RecordEnrichmentBatch(len(enriched), failed, time.Since(start))
	logging.Ctx(ctx).Info().
		Int("requested", len(ids)).
		Int("enriched", len(enriched)).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Enrichment batch complete")

	return enriched
}

// runItem isolates one item: its own timeout, and a panic becomes a
// dropped item.
func (o *Orchestrator) runItem(ctx context.Context, id int64) (out outcome) {
	metrics.EnrichmentInFlight.Inc()
	defer metrics.EnrichmentInFlight.Dec()

	defer func() {
		if r := recover(); r != nil {
			logging.Ctx(ctx).Error().Int64("movie_id", id).Str("panic", fmt.Sprint(r)).Msg("Enrichment item panicked")
			out = outcome{}
		}
	}()

	itemCtx, cancel := context.WithTimeout(ctx, o.opts.ItemTimeout)
	defer cancel()

	m, ok := o.EnrichOne(itemCtx, id)
	return outcome{movie: m, ok: ok}
}

// EnrichOne enriches a single identifier. ok is false when the item is
// dropped.
func (o *Orchestrator) EnrichOne(ctx context.Context, id int64) (models.EnrichedMovie, bool) {
	detail := o.catalog.Detail(ctx, id)
	if !detail.IsOK() {
		logging.Ctx(ctx).Debug().Err(detail.Err()).Int64("movie_id", id).Msg("Detail fetch failed, dropping item")
		return models.EnrichedMovie{}, false
	}
	candidate := detail.Value()
	if strings.TrimSpace(candidate.Title) == "" {
		logging.Ctx(ctx).Debug().Int64("movie_id", id).Msg("Detail has no title, dropping item")
		return models.EnrichedMovie{}, false
	}

	trailer, origin := o.findTrailer(ctx, &candidate)
	metrics.RecordTrailerOrigin(origin)

	movie := models.NewEnrichedMovie(candidate, trailer, o.now())
	if !movie.Valid() {
		logging.Ctx(ctx).Debug().Int64("movie_id", id).Msg("Invalid merge, dropping item")
		return models.EnrichedMovie{}, false
	}
	return movie, true
}

// findTrailer prefers a trailer embedded in the detail record, which costs
// no secondary call, then falls back to a cached secondary search.
func (o *Orchestrator) findTrailer(ctx context.Context, c *models.Candidate) (*models.TrailerRef, string) {
	if ref := EmbeddedTrailer(c.Videos); ref != nil {
		return ref, OriginEmbedded
	}

	if o.videos == nil || !o.videos.Enabled() {
		return nil, OriginNone
	}

	year := c.ReleaseYear()
	key := cache.GenerateKey("youtube.trailer", map[string]interface{}{"title": c.Title, "year": year})
	res := cache.Fetch(ctx, o.loader, key, func(ctx context.Context) (*models.VideoResult, error) {
		return o.videos.SearchTrailer(ctx, c.Title, year)
	})

	if !res.IsOK() {
		if sources.IsQuotaExceeded(res.Err()) && o.opts.QuotaFallback {
			ref := youtube.FallbackTrailer()
			return &ref, OriginFallback
		}
		logging.Ctx(ctx).Debug().Err(res.Err()).Int64("movie_id", c.ID).Msg("Trailer search failed, continuing without trailer")
		return nil, OriginNone
	}

	video := res.Value()
	if video == nil {
		return nil, OriginNone
	}
	ref := video.TrailerRef()
	return &ref, OriginSearch
}

// EmbeddedTrailer returns a reference built from the first YouTube-hosted
// trailer in videos, else the first YouTube-hosted teaser, else nil.
func EmbeddedTrailer(videos []models.Video) *models.TrailerRef {
	var teaser *models.Video
	for i := range videos {
		v := &videos[i]
		if v.Key == "" || !strings.EqualFold(v.Site, "YouTube") {
			continue
		}
		switch {
		case strings.EqualFold(v.Type, "Trailer"):
			return embeddedRef(v)
		case strings.EqualFold(v.Type, "Teaser") && teaser == nil:
			teaser = v
		}
	}
	if teaser != nil {
		return embeddedRef(teaser)
	}
	return nil
}

func embeddedRef(v *models.Video) *models.TrailerRef {
	return &models.TrailerRef{
		ID:           v.Key,
		Title:        v.Name,
		URL:          youtube.WatchURL(v.Key),
		EmbedURL:     youtube.EmbedURL(v.Key),
		ThumbnailURL: youtube.ThumbnailURL(v.Key),
		Channel:      v.Site,
	}
}

// EnrichCandidates enriches the identifiers of an already-fetched list.
func (o *Orchestrator) EnrichCandidates(ctx context.Context, candidates []models.Candidate) []models.EnrichedMovie {
	ids := make([]int64, 0, len(candidates))
	for i := range candidates {
		ids = append(ids, candidates[i].ID)
	}
	return o.EnrichBatch(ctx, ids)
}

// PopularEnriched enriches the first limit popular movies (default
// PopularLimit). A catalog failure yields an empty list.
func (o *Orchestrator) PopularEnriched(ctx context.Context, limit int) []models.EnrichedMovie {
	if limit <= 0 {
		limit = o.opts.PopularLimit
	}
	res := o.catalog.Popular(ctx)
	if !res.IsOK() {
		logging.Ctx(ctx).Warn().Err(res.Err()).Msg("Popular lookup failed, nothing to enrich")
		return []models.EnrichedMovie{}
	}
	return o.EnrichCandidates(ctx, head(res.Value(), limit))
}

// SearchEnriched enriches the first limit search results (default
// SearchLimit). A catalog failure yields an empty list.
func (o *Orchestrator) SearchEnriched(ctx context.Context, term string, limit int) []models.EnrichedMovie {
	if limit <= 0 {
		limit = o.opts.SearchLimit
	}
	res := o.catalog.Search(ctx, term)
	if !res.IsOK() {
		logging.Ctx(ctx).Warn().Err(res.Err()).Str("term", term).Msg("Search failed, nothing to enrich")
		return []models.EnrichedMovie{}
	}
	return o.EnrichCandidates(ctx, head(res.Value(), limit))
}

func head(cs []models.Candidate, n int) []models.Candidate {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
