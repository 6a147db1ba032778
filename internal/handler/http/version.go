package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteText(w, h.buildInfo.String(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing version response")
	}
}
