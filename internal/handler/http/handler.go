package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
	"github.com/go-chi/chi/v5"
)

// Routes is a route tree mounted under the API base path.
type Routes interface {
	Mount(r chi.Router)
}

// Dependencies are the collaborators the handler is assembled from.
type Dependencies struct {
	Identity adapter.IdentityVerifier
	Cache    adapter.Cache

	// Metrics is created when nil.
	Metrics *metrics.Metrics

	BuildInfo models.AppBuildInfo

	// Routes are mounted under config.BasePath after the built-in routes.
	Routes []Routes
}

type Handler struct {
	identity  adapter.IdentityVerifier
	cache     adapter.Cache
	metrics   *metrics.Metrics
	buildInfo models.AppBuildInfo
	routes    []Routes

	corsPolicy *corsPolicy
	traceIDs   *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler assembles the gateway's request pipeline:
// authentication gate, cross-origin policy, access logging and the route
// tree, with the error normalizer as catch-all.
func NewHandler(cfg config.CORS, deps Dependencies, logger *logger.Logger) http.Handler {
	m := deps.Metrics
	if m == nil {
		m = metrics.New()
	}

	h := &Handler{
		identity:   deps.Identity,
		cache:      deps.Cache,
		metrics:    m,
		buildInfo:  deps.BuildInfo,
		routes:     deps.Routes,
		corsPolicy: newCORSPolicy(cfg),
		traceIDs:   utils.NewUUIDGenerator(),
		logger:     logger,
	}

	logger.Info().Msg("http handler created")
	return h.Init()
}

// Init builds the dispatcher. Stage order is fixed.
func (h *Handler) Init() http.Handler {
	stages := []pipeline.Stage{
		h.auth,
		h.cors,
		h.withLogging,
	}

	return pipeline.NewDispatcher(stages, h.router(), h.normalizeError, pipeline.WithPrepare(h.prepare))
}
