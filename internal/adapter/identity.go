// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

const (
	identityUserPath   = "/auth/v1/user"
	identityHealthPath = "/auth/v1/health"
)

// tokenClaims lists the token claims copied into a principal when the
// identity service does not already report them.
var tokenClaims = []string{"exp", "session_id"}

type identityClient struct {
	client  *utils.HTTPClient
	anonKey string

	logger *logger.Logger
}

// NewIdentityClient constructs the REST implementation of [IdentityVerifier].
// Every call carries cfg.AnonKey in the "apikey" header and is bounded by
// cfg.RequestTimeout.
//
// Returns an error if cfg.URL is not an absolute URL.
func NewIdentityClient(cfg config.Identity, logger *logger.Logger) (IdentityVerifier, error) {
	baseURL, err := utils.NormalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity service url: %w", err)
	}

	return &identityClient{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		anonKey: cfg.AnonKey,
		logger:  logger,
	}, nil
}

// Verify implements [IdentityVerifier]. It sends GET /auth/v1/user with the
// caller's token and builds a principal from the returned user document,
// enriched with the token's exp and session_id claims.
func (c *identityClient) Verify(ctx context.Context, token string) (models.Principal, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		SetAuthToken(token).
		Get(identityUserPath)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: verify request: %w", ErrIdentityUnavailable, err)
	}
	if err = mapIdentityError(resp); err != nil {
		c.logger.Debug().Int("status", resp.StatusCode()).Msg("identity service did not verify token")
		return models.Principal{}, err
	}

	principal, err := principalFromUser(resp.Body())
	if err != nil {
		return models.Principal{}, err
	}

	if claims, err := utils.UnverifiedClaims(token); err == nil {
		for _, name := range tokenClaims {
			if _, ok := principal.Claims[name]; ok {
				continue
			}
			if v, ok := claims[name]; ok {
				principal.Claims[name] = v
			}
		}
	}

	return principal, nil
}

// Scoped implements [IdentityVerifier].
func (c *identityClient) Scoped(token string) ScopedIdentity {
	return &scopedIdentity{verifier: c, token: token}
}

// Ping implements [IdentityVerifier]. It sends GET /auth/v1/health.
func (c *identityClient) Ping(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("apikey", c.anonKey).
		Get(identityHealthPath)
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrIdentityUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: health check answered http %d", ErrIdentityUnavailable, resp.StatusCode())
	}
	return nil
}

// principalFromUser decodes a user document. Known fields populate the
// principal; the whole document is kept in Claims.
func principalFromUser(body []byte) (models.Principal, error) {
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Aud   string `json:"aud"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrMalformedIdentityResponse, err)
	}
	if user.ID == "" {
		return models.Principal{}, fmt.Errorf("%w: user has no id", ErrMalformedIdentityResponse)
	}

	claims := map[string]any{}
	if err := json.Unmarshal(body, &claims); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrMalformedIdentityResponse, err)
	}

	return models.Principal{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Audience: user.Aud,
		Claims:   claims,
	}, nil
}

type scopedIdentity struct {
	verifier IdentityVerifier
	token    string
}

func (s *scopedIdentity) Token() string {
	return s.token
}

func (s *scopedIdentity) User(ctx context.Context) (models.Principal, error) {
	return s.verifier.Verify(ctx, s.token)
}
