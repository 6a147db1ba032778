// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/models"
)

type contextKey struct{}

// Completion describes a finished request. It is passed to every hook
// registered with [RequestContext.OnComplete].
type Completion struct {
	// Request is the request as seen by the last stage that ran.
	Request *http.Request

	Status   int
	Size     int
	Duration time.Duration

	// Err is the error that was reported for the request, if any.
	Err error
}

// RequestContext is the per-request scratch space of the pipeline.
// It is owned by one request and must not be shared across requests.
type RequestContext struct {
	// TraceID correlates logs and the X-Trace-ID response header.
	TraceID string

	principal *models.Principal
	identity  adapter.ScopedIdentity
	authErr   error

	err   error
	hooks []func(Completion)
}

// NewRequestContext returns an empty RequestContext.
func NewRequestContext() *RequestContext {
	return &RequestContext{}
}

// SetPrincipal records the verified principal and an identity client scoped
// to the request's credential.
func (rc *RequestContext) SetPrincipal(p models.Principal, identity adapter.ScopedIdentity) {
	rc.principal = &p
	rc.identity = identity
}

// Principal returns the verified principal. The boolean is false when the
// request carried no credential.
func (rc *RequestContext) Principal() (models.Principal, bool) {
	if rc.principal == nil {
		return models.Principal{}, false
	}
	return *rc.principal, true
}

// Identity returns the identity client scoped to the request's credential,
// or nil when the request is unauthenticated.
func (rc *RequestContext) Identity() adapter.ScopedIdentity {
	return rc.identity
}

// SetAuthError records why the request's credential could not be verified.
// The request itself continues without a principal; routes that require one
// report this error instead of a generic unauthenticated error.
func (rc *RequestContext) SetAuthError(err error) {
	rc.authErr = err
}

// AuthError returns the error recorded with SetAuthError, or nil.
func (rc *RequestContext) AuthError() error {
	return rc.authErr
}

// Fail records a route-level error. Only the first error is kept.
func (rc *RequestContext) Fail(err error) {
	if rc.err == nil {
		rc.err = err
	}
}

// Err returns the route-level error recorded with Fail.
func (rc *RequestContext) Err() error {
	return rc.err
}

// OnComplete registers fn to run after the response has been written.
// Hooks run in registration order.
func (rc *RequestContext) OnComplete(fn func(Completion)) {
	rc.hooks = append(rc.hooks, fn)
}

func (rc *RequestContext) complete(c Completion) {
	for _, fn := range rc.hooks {
		fn(c)
	}
}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// fromContext returns the RequestContext stored in ctx, or nil.
func fromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(contextKey{}).(*RequestContext)
	return rc
}

// FromRequest returns the RequestContext of r. Outside a dispatcher it
// returns a fresh, detached RequestContext so callers never see nil.
func FromRequest(r *http.Request) *RequestContext {
	if rc := fromContext(r.Context()); rc != nil {
		return rc
	}
	return NewRequestContext()
}
