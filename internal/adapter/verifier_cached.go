// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
	"github.com/rs/zerolog"
)

const verificationKeyPrefix = "gateway:verify:"

// cachedVerifier wraps an [IdentityVerifier] and keeps successful
// verifications in a [Cache].
//
// Keys are an HMAC of the token so raw credentials never reach the cache.
// Entries expire after ttl or when the token itself expires, whichever comes
// first. Rejections and failures are never cached. Any cache failure is
// logged and the call falls through to the wrapped verifier.
type cachedVerifier struct {
	next   IdentityVerifier
	cache  Cache
	hasher *utils.Hasher
	ttl    time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewCachedVerifier decorates next with verification caching. A ttl of zero
// or less disables caching and returns next unchanged.
func NewCachedVerifier(next IdentityVerifier, cache Cache, hashKey string, ttl time.Duration, logger *logger.Logger) IdentityVerifier {
	if ttl <= 0 {
		return next
	}

	return &cachedVerifier{
		next:   next,
		cache:  cache,
		hasher: utils.NewHasher(hashKey),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (v *cachedVerifier) Verify(ctx context.Context, token string) (models.Principal, error) {
	key := verificationKeyPrefix + v.hasher.HashString(token)

	if principal, ok := v.lookup(ctx, key); ok {
		return principal, nil
	}

	principal, err := v.next.Verify(ctx, token)
	if err != nil {
		return models.Principal{}, err
	}

	v.store(ctx, key, token, principal)
	return principal, nil
}

func (v *cachedVerifier) Scoped(token string) ScopedIdentity {
	return &scopedIdentity{verifier: v, token: token}
}

func (v *cachedVerifier) Ping(ctx context.Context) error {
	return v.next.Ping(ctx)
}

func (v *cachedVerifier) lookup(ctx context.Context, key string) (models.Principal, bool) {
	raw, err := v.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			v.log(ctx).Warn().Err(err).Msg("verification cache lookup failed")
		}
		return models.Principal{}, false
	}

	var principal models.Principal
	if err = json.Unmarshal([]byte(raw), &principal); err != nil || principal.ID == "" {
		v.log(ctx).Warn().Err(err).Msg("dropping unreadable verification cache entry")
		if err = v.cache.Delete(ctx, key); err != nil {
			v.log(ctx).Warn().Err(err).Msg("verification cache delete failed")
		}
		return models.Principal{}, false
	}

	return principal, true
}

func (v *cachedVerifier) store(ctx context.Context, key, token string, principal models.Principal) {
	ttl := v.entryTTL(token, principal)
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(principal)
	if err != nil {
		v.log(ctx).Warn().Err(err).Msg("verification cache encode failed")
		return
	}

	if err = v.cache.Set(ctx, key, string(raw), ttl); err != nil {
		v.log(ctx).Warn().Err(err).Msg("verification cache store failed")
	}
}

// log returns the request-scoped logger carried by ctx, or the verifier's own
// logger when ctx has none.
func (v *cachedVerifier) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return v.logger
}

// entryTTL bounds the configured ttl by the token's remaining lifetime,
// truncated to whole seconds. A token whose expiry cannot be read is cached
// for the configured ttl.
func (v *cachedVerifier) entryTTL(token string, principal models.Principal) time.Duration {
	exp, ok := principal.ExpiresAt()
	if !ok {
		var err error
		if exp, err = utils.TokenExpiry(token); err != nil {
			return v.ttl
		}
	}

	remaining := exp.Sub(v.now()).Truncate(time.Second)
	if remaining < v.ttl {
		return remaining
	}
	return v.ttl
}
