// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package marathon selects the subset of enriched movies with the highest
// total rating that fits a viewing budget, and summarizes the result.
//
// Selection is a 0/1 knapsack with value = rating and weight = duration in
// minutes. Candidates are ordered by rating per minute before the search so
// that ties resolve toward the denser, earlier candidate. All functions are
// pure and deterministic for a given input order.
package marathon

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/cinemarathon/internal/catalog"
	"github.com/tomtom215/cinemarathon/internal/models"
)

const (
	// DefaultMinRating excludes candidates rated below it.
	DefaultMinRating = 6.0
	// DefaultMaxCount bounds both the optimizer input and the output size.
	DefaultMaxCount = 10
	// DefaultSafetyCap bounds the optimizer input regardless of MaxCount.
	DefaultSafetyCap = 60

	// ratingEpsilon absorbs float summation order when comparing branches.
	ratingEpsilon = 1e-9
)

// Plan variants, as reported to metrics.
const (
	VariantStandard = "standard"
	VariantThematic = "thematic"
	VariantDecade   = "decade"
)

// Options tunes a plan.
type Options struct {
	MinRating    float64
	MaxCount     int
	SafetyCap    int
	PreferRecent bool
}

// DefaultOptions returns MinRating 6.0, MaxCount 10, SafetyCap 60 and no
// recency preference.
func DefaultOptions() Options {
	return Options{
		MinRating: DefaultMinRating,
		MaxCount:  DefaultMaxCount,
		SafetyCap: DefaultSafetyCap,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxCount
	}
	if o.SafetyCap <= 0 {
		o.SafetyCap = DefaultSafetyCap
	}
	return o
}

// Plan selects movies maximizing total rating within budget minutes.
// budget <= 0, an empty pool or a pool where nothing fits yields an empty
// plan with Remaining = budget.
func Plan(movies []models.EnrichedMovie, budget int, opts Options) models.Plan {
	opts = opts.withDefaults()
	if budget <= 0 || len(movies) == 0 {
		return buildPlan(nil, budget)
	}

	pool := prepare(movies, opts)
	selected := optimize(pool, budget)
	if len(selected) > opts.MaxCount {
		selected = selected[:opts.MaxCount]
	}
	return buildPlan(selected, budget)
}

// PlanThematic plans over movies sharing at least one genre with genres.
func PlanThematic(movies []models.EnrichedMovie, budget int, genres []string, opts Options) models.Plan {
	filtered := make([]models.EnrichedMovie, 0, len(movies))
	for i := range movies {
		if movies[i].HasAnyGenre(genres) {
			filtered = append(filtered, movies[i])
		}
	}
	return Plan(filtered, budget, opts)
}

// PlanDecade plans over movies released in [decade, decade+9].
func PlanDecade(movies []models.EnrichedMovie, budget int, decade int, opts Options) models.Plan {
	filtered := make([]models.EnrichedMovie, 0, len(movies))
	for i := range movies {
		if y := movies[i].ReleaseYear(); y >= decade && y <= decade+9 {
			filtered = append(filtered, movies[i])
		}
	}
	return Plan(filtered, budget, opts)
}

// prepare filters, orders and caps the optimizer input.
func prepare(movies []models.EnrichedMovie, opts Options) []models.EnrichedMovie {
	pool := catalog.FilterByMinRating(opts.MinRating, catalog.FilterValid(movies))

	if opts.PreferRecent {
		sort.SliceStable(pool, func(i, j int) bool {
			return releaseTime(&pool[i]).After(releaseTime(&pool[j]))
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return density(&pool[i]) > density(&pool[j])
	})

	if limit := min(opts.MaxCount, opts.SafetyCap); len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func density(m *models.EnrichedMovie) float64 {
	return m.Rating / float64(m.Duration)
}

// releaseTime orders unknown dates before every known date.
func releaseTime(m *models.EnrichedMovie) time.Time {
	t, _ := m.Released()
	return t
}

type memoKey struct {
	index     int
	remaining int
}

// optimizer is a top-down knapsack over a fixed ordered pool, memoized on
// (index, remaining budget).
type optimizer struct {
	pool []models.EnrichedMovie
	memo map[memoKey]float64
}

// best returns the highest total rating reachable from pool[i:] within
// remaining minutes.
func (o *optimizer) best(i, remaining int) float64 {
	if i == len(o.pool) || remaining <= 0 {
		return 0
	}
	key := memoKey{i, remaining}
	if v, ok := o.memo[key]; ok {
		return v
	}

	v := o.best(i+1, remaining)
	if d := o.pool[i].Duration; d <= remaining {
		if with := o.pool[i].Rating + o.best(i+1, remaining-d); with >= v-ratingEpsilon {
			v = with
		}
	}
	o.memo[key] = v
	return v
}

// includes reports whether the optimal choice at (i, remaining) takes
// pool[i]. Equal totals take the item.
func (o *optimizer) includes(i, remaining int) bool {
	d := o.pool[i].Duration
	if d > remaining {
		return false
	}
	with := o.pool[i].Rating + o.best(i+1, remaining-d)
	return with >= o.best(i+1, remaining)-ratingEpsilon
}

func optimize(pool []models.EnrichedMovie, budget int) []models.EnrichedMovie {
	o := &optimizer{pool: pool, memo: make(map[memoKey]float64, len(pool)*4)}

	var selected []models.EnrichedMovie
	remaining := budget
	for i := 0; i < len(pool) && remaining > 0; i++ {
		if o.includes(i, remaining) {
			selected = append(selected, pool[i])
			remaining -= pool[i].Duration
		}
	}
	return selected
}

func buildPlan(selected []models.EnrichedMovie, budget int) models.Plan {
	if selected == nil {
		selected = []models.EnrichedMovie{}
	}

	total := 0
	sum := 0.0
	for i := range selected {
		total += selected[i].Duration
		sum += selected[i].Rating
	}

	avg := 0.0
	if len(selected) > 0 {
		avg = sum / float64(len(selected))
	}

	plan := models.Plan{
		Movies:        selected,
		TotalDuration: total,
		Budget:        budget,
		Remaining:     budget - total,
		AverageRating: math.Round(avg*100) / 100,
		Count:         len(selected),
	}
	plan.Description = describe(&plan, avg)
	return plan
}

// NoMatchDescription is the description of an empty plan.
const NoMatchDescription = "No compatible movies were found."

// describe renders the plan summary; avg is the unrounded mean rating.
func describe(p *models.Plan, avg float64) string {
	if p.Empty() {
		return NoMatchDescription
	}
	titles := make([]string, len(p.Movies))
	for i := range p.Movies {
		titles[i] = `"` + p.Movies[i].Title + `"`
	}
	return fmt.Sprintf("Marathon of %d movie(s) [%s] with an average rating of %.1f★: %s",
		p.Count, FormatMinutes(p.TotalDuration), avg, strings.Join(titles, ", "))
}

// FormatMinutes renders minutes as "Hh Mm".
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%dh %dm", sign, minutes/60, minutes%60)
}
