package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/apperr"
	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
)

// me returns the caller's principal. It is mounted behind requireAuth.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) error {
	principal, ok := pipeline.FromRequest(r).Principal()
	if !ok {
		return apperr.Unauthenticated("")
	}

	_, err := utils.WriteJSON(w, principal, http.StatusOK)
	return err
}
