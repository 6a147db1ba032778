package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
)

// withLogging writes one access log line per request once the response is
// complete.
func (h *Handler) withLogging(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	log := logger.FromRequest(r)

	uri := r.RequestURI
	method := r.Method

	pipeline.FromRequest(r).OnComplete(func(c pipeline.Completion) {
		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", c.Status).
			Dur("duration", c.Duration).
			Int("size", c.Size).
			Send()
	})

	return r, nil
}
