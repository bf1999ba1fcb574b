// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package sources holds the outbound HTTP transport shared by the catalog
// and video adapters: a token-bucket limiter, HTTP 429 backoff and a circuit
// breaker per upstream.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemarathon/internal/config"
	"github.com/tomtom215/cinemarathon/internal/logging"
	"github.com/tomtom215/cinemarathon/internal/metrics"
)

const (
	// maxErrorBodySize caps how much of an error response is kept.
	maxErrorBodySize = 64 * 1024

	// maxResponseSize caps a successful response body.
	maxResponseSize = 8 * 1024 * 1024

	defaultRetryBaseDelay = time.Second
)

// Options configures a Transport.
type Options struct {
	// Name labels logs, metrics and the breaker ("tmdb", "youtube").
	Name              string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
	RetryBaseDelay    time.Duration
	Breaker           config.BreakerConfig

	// ForbiddenIsQuota maps HTTP 403 to ErrQuotaExceeded.
	ForbiddenIsQuota bool

	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Transport performs GET requests against one upstream.
type Transport struct {
	name             string
	baseURL          string
	client           *http.Client
	limiter          *rate.Limiter
	maxRetries       int
	retryBaseDelay   time.Duration
	forbiddenIsQuota bool
	cb               *gobreaker.CircuitBreaker[[]byte]
}

// NewTransport builds a Transport from opts.
func NewTransport(opts Options) *Transport {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	retryBase := opts.RetryBaseDelay
	if retryBase <= 0 {
		retryBase = defaultRetryBaseDelay
	}

	t := &Transport{
		name:             opts.Name,
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		client:           client,
		limiter:          rate.NewLimiter(limit, burst),
		maxRetries:       max(0, opts.MaxRetries),
		retryBaseDelay:   retryBase,
		forbiddenIsQuota: opts.ForbiddenIsQuota,
	}
	t.cb = newBreaker(opts.Name+"-api", opts.Breaker)
	return t
}

// Name returns the upstream label.
func (t *Transport) Name() string {
	return t.name
}

// BreakerState returns the breaker state as a string.
func (t *Transport) BreakerState() string {
	return stateToString(t.cb.State())
}

func newBreaker(name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	ratio := cfg.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				log := logging.WithComponent("circuit-breaker")
				log.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Quota refusals, 404s and the caller's own cancellation or
		// deadline say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrQuotaExceeded) ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, errCallerDone)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			log := logging.WithComponent("circuit-breaker")
			log.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
}

// GetJSON issues GET {base}{path}?{params} and decodes a 200 response into
// out. op labels the call in metrics and errors.
func (t *Transport) GetJSON(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	start := time.Now()
	body, err := t.cb.Execute(func() ([]byte, error) {
		body, err := t.fetch(ctx, op, path, params)
		return body, markCallerDone(ctx, err)
	})
	if err != nil {
		outcome := outcomeFor(err)
		if outcome == "rejected" {
			metrics.CircuitBreakerRequests.WithLabelValues(t.name+"-api", "rejected").Inc()
			err = &SourceError{Source: t.name, Endpoint: op, Err: fmt.Errorf("%w: %v", ErrCircuitOpen, err)}
		} else if outcome != "canceled" {
			metrics.CircuitBreakerRequests.WithLabelValues(t.name+"-api", "failure").Inc()
		}
		metrics.RecordSourceRequest(t.name, op, outcome, time.Since(start))
		return err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(t.name+"-api", "success").Inc()
	metrics.RecordSourceRequest(t.name, op, "success", time.Since(start))

	if err := json.Unmarshal(body, out); err != nil {
		return &SourceError{Source: t.name, Endpoint: op, StatusCode: http.StatusOK, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, errCallerDone):
		return "canceled"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "error"
	}
}

// markCallerDone tags err when the caller's context ended, so that the
// breaker does not count it against the upstream.
func markCallerDone(ctx context.Context, err error) error {
	if err == nil || ctx.Err() == nil || errors.Is(err, errCallerDone) {
		return err
	}
	var se *SourceError
	if errors.As(err, &se) {
		se.Err = fmt.Errorf("%w: %w", errCallerDone, se.Err)
		return err
	}
	return fmt.Errorf("%w: %w", errCallerDone, err)
}

// fetch waits on the limiter, performs the request and retries HTTP 429
// with exponential backoff (base, 2*base, 4*base ...). A Retry-After header
// in seconds overrides the computed delay.
func (t *Transport) fetch(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	reqURL := t.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		// Wait fails only on the caller's context: done, or a deadline the
		// next token would miss.
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &SourceError{Source: t.name, Endpoint: op, Err: fmt.Errorf("%w: %w", errCallerDone, err)}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, &SourceError{Source: t.name, Endpoint: op, Err: fmt.Errorf("create request: %w", err)}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, &SourceError{Source: t.name, Endpoint: op, Err: fmt.Errorf("request failed: %w", err)}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			_ = resp.Body.Close()

			if attempt == t.maxRetries {
				break
			}

			delay := t.retryBaseDelay * time.Duration(1<<uint(attempt))
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
			metrics.RecordSourceRetry(t.name)
			logging.Ctx(ctx).Warn().Str("source", t.name).Str("endpoint", op).
				Int("attempt", attempt+1).Dur("delay", delay).Msg("Rate limited, backing off")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &SourceError{Source: t.name, Endpoint: op, Err: ctx.Err()}
			}
			continue
		}

		return t.readResponse(resp, op)
	}

	return nil, &SourceError{
		Source:     t.name,
		Endpoint:   op,
		StatusCode: http.StatusTooManyRequests,
		Err:        fmt.Errorf("%w after %d retries", ErrRateLimited, t.maxRetries),
	}
}

func (t *Transport) readResponse(resp *http.Response, op string) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		se := &SourceError{Source: t.name, Endpoint: op, StatusCode: resp.StatusCode, Body: string(body)}
		switch {
		case resp.StatusCode == http.StatusNotFound:
			se.Err = ErrNotFound
		case resp.StatusCode == http.StatusForbidden && t.forbiddenIsQuota:
			se.Err = ErrQuotaExceeded
		default:
			se.Err = fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body)))
		}
		return nil, se
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &SourceError{Source: t.name, Endpoint: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
