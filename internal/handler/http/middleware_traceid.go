package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = "X-Trace-ID"
	// maxTraceIDLen bounds a client-supplied trace ID.
	maxTraceIDLen = 128
)

// prepare runs before the first stage of every request. It assigns the trace
// ID (reusing a well-formed X-Trace-ID from the request), attaches a
// request-scoped logger carrying it, and registers the metrics hook.
//
// The chi route context is created here, ahead of the router, so that the
// matched route pattern is still readable once the request has completed.
func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) *http.Request {
	traceID := r.Header.Get(traceIDHeader)
	if !validTraceID(traceID) {
		traceID = h.traceIDs.Generate()
	}

	rc := pipeline.FromRequest(r)
	rc.TraceID = traceID
	rc.OnComplete(h.recordMetrics)

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})

	ctx := l.WithContext(r.Context())
	ctx = context.WithValue(ctx, chi.RouteCtxKey, chi.NewRouteContext())

	w.Header().Set(traceIDHeader, traceID)
	return r.WithContext(ctx)
}

// validTraceID accepts non-empty IDs of at most maxTraceIDLen characters
// drawn from [A-Za-z0-9._:-].
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

func (h *Handler) recordMetrics(c pipeline.Completion) {
	h.metrics.RecordRequest(c.Request.Method, routePattern(c.Request), c.Status, c.Size, c.Duration)
}

// routePattern returns the chi pattern the request matched, or "".
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
