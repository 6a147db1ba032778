package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) router() *chi.Mux {
	router := chi.NewRouter()

	// must be set before sub-routers are mounted so they inherit it
	router.NotFound(pipeline.Handle(notFound))
	router.MethodNotAllowed(pipeline.Handle(notFound))

	router.Get("/", h.root)
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	router.Route(config.BasePath, func(r chi.Router) {
		r.Get("/health", pipeline.Handle(h.health))
		r.Get("/version", h.version)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(pipeline.Middleware(requireAuth))
			r.Get("/me", pipeline.Handle(h.me))
		})

		for _, routes := range h.routes {
			routes.Mount(r)
		}
	})

	return router
}
