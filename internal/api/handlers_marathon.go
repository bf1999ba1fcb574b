// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinemarathon/internal/catalog"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/marathon"
	"github.com/tomtom215/cinemarathon/internal/metrics"
	"github.com/tomtom215/cinemarathon/internal/models"
)

// MarathonResponse is the payload of the marathon endpoints.
type MarathonResponse struct {
	Variant  string        `json:"variant"`
	Plan     models.Plan   `json:"plan"`
	Report   models.Report `json:"report"`
	PoolSize int           `json:"pool_size"`
	Genres   []string      `json:"genres,omitempty"`
	Decade   int           `json:"decade,omitempty"`
}

func (h *Handler) marathonOptions() marathon.Options {
	mc := h.config.Marathon
	return marathon.Options{
		MinRating:    mc.MinRating,
		MaxCount:     mc.MaxCount,
		SafetyCap:    mc.SafetyCap,
		PreferRecent: mc.PreferRecent,
	}
}

// decodeBody decodes and validates a request body, writing the 400 itself.
// It reports whether the handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSONBody(w, r, dst); err != nil {
		msg := "Request body must be a JSON object"
		if errors.Is(err, errBodyRequired) {
			msg = "Request body is required"
		}
		logging.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected request body")
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", msg, nil)
		return false
	}
	if verr := validateRequest(dst); verr != nil {
		respondValidationError(w, verr)
		return false
	}
	return true
}

// Marathon handles POST /api/v1/marathon.
//
// @Summary Plan a marathon
// @Description Enriches the popular pool and selects the movies that maximize total rating within the time budget.
// @Tags Marathon
// @Accept json
// @Produce json
// @Param request body MarathonRequest true "Budget and optional overrides"
// @Success 200 {object} models.APIResponse{data=MarathonResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Router /marathon [post]
func (h *Handler) Marathon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req MarathonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := h.marathonOptions()
	if req.MinRating != nil {
		opts.MinRating = *req.MinRating
	}
	if req.MaxCount != nil {
		opts.MaxCount = *req.MaxCount
	}
	if req.PreferRecent {
		opts.PreferRecent = true
	}

	pool := h.enricher.PopularEnriched(r.Context(), h.config.Marathon.PopularPool)
	plan := marathon.Plan(pool, req.BudgetMinutes, opts)
	h.respondPlan(w, r, start, MarathonResponse{
		Variant:  marathon.VariantStandard,
		Plan:     plan,
		PoolSize: len(pool),
	})
}

// ThematicMarathon handles POST /api/v1/marathon/thematic.
//
// @Summary Plan a genre marathon
// @Description Like /marathon, keeping only movies that share at least one of the requested genres.
// @Tags Marathon
// @Accept json
// @Produce json
// @Param request body ThematicRequest true "Budget and genres"
// @Success 200 {object} models.APIResponse{data=MarathonResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Router /marathon/thematic [post]
func (h *Handler) ThematicMarathon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ThematicRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pool := h.enricher.PopularEnriched(r.Context(), h.config.Marathon.ThematicPool)
	plan := marathon.PlanThematic(pool, req.BudgetMinutes, req.Genres, h.marathonOptions())
	h.respondPlan(w, r, start, MarathonResponse{
		Variant:  marathon.VariantThematic,
		Plan:     plan,
		PoolSize: len(pool),
		Genres:   req.Genres,
	})
}

// DecadeMarathon handles POST /api/v1/marathon/decade.
//
// @Summary Plan a decade marathon
// @Description Discovers well rated movies released in the decade, enriches the first of them and plans within the budget.
// @Tags Marathon
// @Accept json
// @Produce json
// @Param request body DecadeRequest true "Budget and decade (multiple of 10)"
// @Success 200 {object} models.APIResponse{data=MarathonResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Router /marathon/decade [post]
func (h *Handler) DecadeMarathon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req DecadeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	candidates := catalog.FlatOrEmpty(ctx, "discover_decade", h.catalog.DiscoverByDecade(ctx, req.Decade))
	if n := h.config.Marathon.DecadePool; n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	pool := h.enricher.EnrichCandidates(ctx, candidates)
	plan := marathon.PlanDecade(pool, req.BudgetMinutes, req.Decade, h.marathonOptions())
	h.respondPlan(w, r, start, MarathonResponse{
		Variant:  marathon.VariantDecade,
		Plan:     plan,
		PoolSize: len(pool),
		Decade:   req.Decade,
	})
}

func (h *Handler) respondPlan(w http.ResponseWriter, r *http.Request, start time.Time, resp MarathonResponse) {
	resp.Report = marathon.Analyze(resp.Plan)
	metrics.RecordMarathonPlan(resp.Variant, resp.Plan.Count)

	logging.Ctx(r.Context()).Info().
		Str("variant", resp.Variant).
		Int("pool", resp.PoolSize).
		Int("selected", resp.Plan.Count).
		Int("budget_minutes", resp.Plan.Budget).
		Int("total_minutes", resp.Plan.TotalDuration).
		Msg("Marathon planned")

	respondSuccess(w, start, resp)
}

// MarathonPresets handles GET /api/v1/marathon/presets.
//
// @Summary Budget presets
// @Tags Marathon
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]marathon.Preset}
// @Router /marathon/presets [get]
func (h *Handler) MarathonPresets(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, time.Now(), marathon.Presets())
}
