// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the gateway's external collaborators:
// the identity-verification service and the key/value cache.
//
// Collaborators are reached over the network and treated as opaque. Their
// transport and status-code failures are mapped to the sentinel errors in
// errors.go so that callers can use [errors.Is] without knowing which backend
// answered (e.g. [ErrCredentialRejected] versus [ErrIdentityUnavailable]).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityVerifier verifies bearer credentials against the identity service.
type IdentityVerifier interface {
	// Verify exchanges token for the principal it belongs to.
	// It returns an error wrapping [ErrCredentialRejected] when the identity
	// service refuses the token and [ErrIdentityUnavailable] when the
	// service cannot give a verdict.
	Verify(ctx context.Context, token string) (models.Principal, error)

	// Scoped returns a handle to the identity service that acts with token.
	Scoped(token string) ScopedIdentity

	// Ping checks that the identity service is reachable and healthy.
	Ping(ctx context.Context) error
}

// ScopedIdentity is an identity client bound to one request's credential.
// Route handlers use it to call the identity service on behalf of the caller.
type ScopedIdentity interface {
	// Token returns the credential the handle is bound to.
	Token() string

	// User fetches the current principal for the bound credential.
	User(ctx context.Context) (models.Principal, error)
}

// Cache is a minimal key/value store with expiry.
type Cache interface {
	// Get returns the value stored at key or an error wrapping [ErrCacheMiss].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. A positive ttl sets an expiry; zero or a
	// negative ttl stores the value without one.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Expire resets the expiry of an existing key. It returns an error
	// wrapping [ErrCacheMiss] if the key does not exist.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the cache is reachable.
	Ping(ctx context.Context) error

	// Close releases connections held by the client.
	Close() error
}
