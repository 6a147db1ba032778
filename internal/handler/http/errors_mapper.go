// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/apperr"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// normalizeError is the single error surface of the gateway.
//
// It classifies err, logs the original error with the request-scoped logger,
// counts it by kind and writes the stable JSON error body. Unknown errors are
// reported as internal without echoing their text.
func (h *Handler) normalizeError(w http.ResponseWriter, r *http.Request, err error) {
	classified := apperr.From(err)
	status := classified.Status()

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("kind", string(classified.Kind)).
		Int("status", status).
		Msg("request failed")

	h.metrics.RecordError(string(classified.Kind))

	if _, werr := utils.WriteJSON(w, errorResponse(classified), status); werr != nil {
		log.Error().Err(werr).Msg("error writing error response")
	}
}

func errorResponse(e *apperr.Error) models.ErrorResponse {
	return models.ErrorResponse{
		Status:  e.Status(),
		Kind:    string(e.Kind),
		Message: e.Message,
	}
}
