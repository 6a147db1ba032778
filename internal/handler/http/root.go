package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
)

const rootMessage = "API endpoint is working!"

// root is the liveness probe. It answers regardless of authentication.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteText(w, rootMessage, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing liveness response")
	}
}
