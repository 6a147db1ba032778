// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAnonKey = "anon-key"

// newTestIdentity создаёт identityClient, направленный на тестовый сервер
func newTestIdentity(t *testing.T, serverURL string) IdentityVerifier {
	t.Helper()
	cfg := config.Identity{URL: serverURL, AnonKey: testAnonKey, RequestTimeout: time.Second}

	c, err := NewIdentityClient(cfg, logger.Nop())
	require.NoError(t, err)
	return c
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("identity-secret"))
	require.NoError(t, err)
	return token
}

// ── Verify ──────────────────────────────────────────────────────────────────

func TestIdentityVerify_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := signedToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp, "session_id": "sess-9"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, testAnonKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"a@example.com","role":"authenticated","aud":"authenticated","app_metadata":{"provider":"email"}}`))
	}))
	defer srv.Close()

	got, err := newTestIdentity(t, srv.URL).Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "authenticated", got.Role)
	assert.Equal(t, "authenticated", got.Audience)
	assert.Equal(t, map[string]any{"provider": "email"}, got.Claims["app_metadata"])
	assert.Equal(t, "sess-9", got.Claims["session_id"])

	gotExp, ok := got.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, exp, gotExp.Unix())
}

func TestIdentityVerify_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "401 expired token", status: http.StatusUnauthorized, wantErr: ErrCredentialRejected},
		{name: "403 revoked", status: http.StatusForbidden, wantErr: ErrCredentialRejected},
		{name: "400 malformed", status: http.StatusBadRequest, wantErr: ErrCredentialRejected},
		{name: "422 bad jwt", status: http.StatusUnprocessableEntity, wantErr: ErrCredentialRejected},
		{name: "404 user gone", status: http.StatusNotFound, wantErr: ErrCredentialRejected},
		{name: "429 throttled", status: http.StatusTooManyRequests, wantErr: ErrIdentityUnavailable},
		{name: "500", status: http.StatusInternalServerError, wantErr: ErrIdentityUnavailable},
		{name: "502", status: http.StatusBadGateway, wantErr: ErrIdentityUnavailable},
		{name: "503", status: http.StatusServiceUnavailable, wantErr: ErrIdentityUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"msg":"nope"}`))
			}))
			defer srv.Close()

			_, err := newTestIdentity(t, srv.URL).Verify(context.Background(), "token")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIdentityVerify_RejectedAndUnavailableNeverCollapse(t *testing.T) {
	rejected := mapIdentityStatus(t, http.StatusUnauthorized)
	unavailable := mapIdentityStatus(t, http.StatusServiceUnavailable)

	assert.NotErrorIs(t, rejected, ErrIdentityUnavailable)
	assert.NotErrorIs(t, unavailable, ErrCredentialRejected)
}

func mapIdentityStatus(t *testing.T, status int) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	_, err := newTestIdentity(t, srv.URL).Verify(context.Background(), "token")
	require.Error(t, err)
	return err
}

func TestIdentityVerify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestIdentity(t, url).Verify(context.Background(), "token")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestIdentityVerify_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := config.Identity{URL: srv.URL, AnonKey: testAnonKey, RequestTimeout: 50 * time.Millisecond}
	c, err := NewIdentityClient(cfg, logger.Nop())
	require.NoError(t, err)

	_, err = c.Verify(context.Background(), "token")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestIdentityVerify_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>`},
		{name: "no id", body: `{"email":"a@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestIdentity(t, srv.URL).Verify(context.Background(), "token")

			assert.ErrorIs(t, err, ErrMalformedIdentityResponse)
			assert.NotErrorIs(t, err, ErrCredentialRejected)
			assert.NotErrorIs(t, err, ErrIdentityUnavailable)
		})
	}
}

func TestIdentityScoped_UsesBoundToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"user-2"}`))
	}))
	defer srv.Close()

	scoped := newTestIdentity(t, srv.URL).Scoped("bound-token")
	got, err := scoped.User(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "bound-token", scoped.Token())
	assert.Equal(t, "user-2", got.ID)
	assert.Equal(t, "Bearer bound-token", gotAuth)
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestIdentityPing(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "healthy", status: http.StatusOK},
		{name: "unhealthy", status: http.StatusServiceUnavailable, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/health", r.URL.Path)
				assert.Equal(t, testAnonKey, r.Header.Get("apikey"))
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestIdentity(t, srv.URL).Ping(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIdentityUnavailable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewIdentityClient_InvalidURL(t *testing.T) {
	_, err := NewIdentityClient(config.Identity{URL: "not a url"}, logger.Nop())
	assert.Error(t, err)
}
