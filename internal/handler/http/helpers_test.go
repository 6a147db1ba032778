package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/mock"
	"github.com/MKhiriev/go-api-gateway/internal/pipeline"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testOrigin = "http://localhost:3000"

func testCORSConfig() config.CORS {
	return config.CORS{
		AllowedOrigins:   []string{testOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           600,
	}
}

type testDeps struct {
	identity *mock.MockIdentityVerifier
	cache    *mock.MockCache
	metrics  *metrics.Metrics
}

// newTestHandler создаёт Handler с моками коллабораторов и nop-логгером.
func newTestHandler(t *testing.T) (*Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		identity: mock.NewMockIdentityVerifier(ctrl),
		cache:    mock.NewMockCache(ctrl),
		metrics:  metrics.New(),
	}

	h := &Handler{
		identity:   deps.identity,
		cache:      deps.cache,
		metrics:    deps.metrics,
		buildInfo:  models.NewAppBuildInfo("v0.1.0", "2026-01-01", "abc123"),
		corsPolicy: newCORSPolicy(testCORSConfig()),
		traceIDs:   utils.NewUUIDGenerator(),
		logger:     logger.Nop(),
	}
	return h, deps
}

// withRequestContext attaches a fresh RequestContext and a nop logger the
// way the dispatcher does, for testing stages in isolation.
func withRequestContext(r *http.Request) (*http.Request, *pipeline.RequestContext) {
	rc := pipeline.NewRequestContext()
	ctx := pipeline.WithRequestContext(r.Context(), rc)
	ctx = logger.Nop().Logger.WithContext(ctx)
	return r.WithContext(ctx), rc
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body))
	return body
}

func scrapeMetrics(t *testing.T, deps testDeps) string {
	t.Helper()
	rr := httptest.NewRecorder()
	deps.metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}
