// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/apperr"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// health is the readiness probe. It pings the identity service and the cache
// concurrently and reports upstream-unavailable if either fails.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	checks := map[string]func(context.Context) error{
		"identity": h.identity.Ping,
		"cache":    h.cache.Ping,
	}

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(checks))
	for name, ping := range checks {
		go func() {
			results <- result{name: name, err: ping(ctx)}
		}()
	}

	resp := models.HealthResponse{Status: models.HealthStatusOK, Checks: make(map[string]string, len(checks))}
	var failed error
	for range checks {
		res := <-results
		if res.err != nil {
			if failed == nil {
				failed = fmt.Errorf("%s check: %w", res.name, res.err)
			}
			continue
		}
		resp.Checks[res.name] = models.HealthStatusOK
	}

	if failed != nil {
		return apperr.UpstreamUnavailable(failed)
	}

	_, err := utils.WriteJSON(w, resp, http.StatusOK)
	return err
}
