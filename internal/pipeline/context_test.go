package pipeline

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-api-gateway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContext_Principal(t *testing.T) {
	rc := NewRequestContext()

	_, ok := rc.Principal()
	assert.False(t, ok)
	assert.Nil(t, rc.Identity())

	rc.SetPrincipal(models.Principal{ID: "user-1", Role: "authenticated"}, nil)

	p, ok := rc.Principal()
	require.True(t, ok)
	assert.Equal(t, "user-1", p.ID)
}

func TestRequestContext_FailKeepsFirstError(t *testing.T) {
	rc := NewRequestContext()
	first := errors.New("first")

	rc.Fail(first)
	rc.Fail(errors.New("second"))

	assert.Same(t, first, rc.Err())
}

func TestRequestContext_AuthError(t *testing.T) {
	rc := NewRequestContext()
	assert.NoError(t, rc.AuthError())

	rejected := errors.New("token expired")
	rc.SetAuthError(rejected)

	assert.Same(t, rejected, rc.AuthError())
	_, ok := rc.Principal()
	assert.False(t, ok)
	assert.NoError(t, rc.Err())
}

func TestFromRequest_OutsideDispatcher(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, fromContext(r.Context()))
	assert.NotNil(t, FromRequest(r))
}

func TestWithRequestContext(t *testing.T) {
	rc := NewRequestContext()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(WithRequestContext(r.Context(), rc))

	assert.Same(t, rc, FromRequest(r))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		stage      Stage
		wantNext   bool
		wantFailed bool
	}{
		{
			name:     "forward",
			stage:    func(w http.ResponseWriter, r *http.Request) (*http.Request, error) { return r, nil },
			wantNext: true,
		},
		{
			name:  "respond",
			stage: func(w http.ResponseWriter, r *http.Request) (*http.Request, error) { return nil, nil },
		},
		{
			name:       "fail",
			stage:      func(w http.ResponseWriter, r *http.Request) (*http.Request, error) { return nil, errors.New("x") },
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewRequestContext()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(WithRequestContext(r.Context(), rc))

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

			Middleware(tt.stage)(next).ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, tt.wantNext, nextCalled)
			assert.Equal(t, tt.wantFailed, rc.Err() != nil)
		})
	}
}
