// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the request middleware. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a bearer token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMissingRefreshCookie is returned by the auth routes that need the
	// refresh cookie when the request carries none.
	ErrMissingRefreshCookie = errors.New("missing refresh cookie")

	// ErrCSRFMismatch is returned when the CSRF header does not equal the
	// CSRF cookie.
	ErrCSRFMismatch = errors.New("csrf token mismatch")

	// ErrPayloadTooLarge is returned when a request body exceeds its limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited is returned when an account writes too often.
	ErrRateLimited = errors.New("rate limited")

	// ErrBadContentEncoding is returned when a gzip request body has no
	// valid gzip header.
	ErrBadContentEncoding = errors.New("bad gzip request body")
)
