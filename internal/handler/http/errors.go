// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication gate when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "<scheme> <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrUnsupportedAuthScheme is returned when the header uses a scheme
	// other than Bearer.
	ErrUnsupportedAuthScheme = errors.New("unsupported `Authorization` scheme")

	// ErrEmptyToken is returned when the header names the Bearer scheme but
	// carries no token.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
