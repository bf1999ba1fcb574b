// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package models

import "errors"

// ErrUnknownFailure stands in when a failed Result is built from a nil error.
var ErrUnknownFailure = errors.New("unknown failure")

// Result carries either a value or a failure, never both. Source lookups
// return it so that callers decide explicitly what a failure folds into.
//
//	res := svc.Detail(ctx, id)
//	if !res.IsOK() {
//	    return nil
//	}
//	movie := res.Value()
type Result[T any] struct {
	value T
	err   error
}

// OK wraps a successful value.
func OK[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a failure.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknownFailure
	}
	return Result[T]{err: err}
}

// ResultOf adapts a conventional (value, error) pair.
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return OK(v)
}

// IsOK reports whether the result holds a value.
func (r Result[T]) IsOK() bool {
	return r.err == nil
}

// Value returns the value; the zero value for a failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil.
func (r Result[T]) Err() error {
	return r.err
}

// Unpack returns the conventional (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}
