package adapter

import "errors"

// Identity service errors.
var (
	// ErrCredentialRejected means the identity service examined the
	// credential and refused it (expired, malformed or revoked).
	ErrCredentialRejected = errors.New("credential rejected by identity service")

	// ErrIdentityUnavailable means the identity service could not give a
	// verdict: transport failure, timeout, throttling or a 5xx answer.
	ErrIdentityUnavailable = errors.New("identity service unavailable")

	// ErrMalformedIdentityResponse means the identity service answered 2xx
	// with a body that does not describe a user.
	ErrMalformedIdentityResponse = errors.New("malformed identity service response")
)

// Cache errors.
var (
	ErrCacheMiss           = errors.New("cache miss")
	ErrCacheUnavailable    = errors.New("cache unavailable")
	ErrCacheCommand        = errors.New("cache command failed")
	ErrUnsupportedCacheURL = errors.New("unsupported cache URL scheme")
)
