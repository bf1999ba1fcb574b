// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package sources

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded is returned when the upstream refuses the request for
	// quota reasons (HTTP 403 on quota-metered sources).
	ErrQuotaExceeded = errors.New("source quota exceeded")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("resource not found")

	// ErrCircuitOpen is returned when the breaker rejects a call without
	// reaching the network.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// errCallerDone marks failures caused by the caller's context rather
	// than the upstream.
	errCallerDone = errors.New("caller context done")

	// ErrRateLimited is returned when HTTP 429 persists past the retry budget.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// SourceError describes a failed upstream call.
type SourceError struct {
	Source     string
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Source, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Source, e.Endpoint, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsQuotaExceeded reports whether err carries ErrQuotaExceeded.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
