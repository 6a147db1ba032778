// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/apperr"
)

// notFound is registered as both the router's NotFound and MethodNotAllowed
// handler. A path that exists but does not support the requested method is
// reported as not-found, so callers cannot probe which routes exist.
func notFound(w http.ResponseWriter, r *http.Request) error {
	return apperr.NotFound("route not found")
}
