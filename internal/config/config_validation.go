// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// normalize trims the entries of every list setting and drops empty ones.
// caarlos0/env splits lists on the separator only, so "a, *" yields " *".
// It runs before validate so that the checks see what the server will use.
func (cfg *StructuredConfig) normalize() {
	cfg.CORS.AllowedOrigins = trimList(cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedMethods = trimList(cfg.CORS.AllowedMethods)
	cfg.CORS.AllowedHeaders = trimList(cfg.CORS.AllowedHeaders)
	cfg.CORS.ExposedHeaders = trimList(cfg.CORS.ExposedHeaders)
}

func trimList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants before any other component runs.
//
// Every problem is reported, not just the first: the returned error joins one
// [ErrMissingRequired] or [ErrInvalidValue] per offending environment
// variable. Returns nil if the configuration is valid.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	required := func(name, value string) bool {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingRequired, name))
			return false
		}
		return true
	}
	invalid := func(name, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalidValue, name, fmt.Sprintf(format, args...)))
	}

	if required("SERVICE_URL", cfg.Identity.URL) {
		if err := validateURL(cfg.Identity.URL, "http", "https"); err != nil {
			invalid("SERVICE_URL", "%v", err)
		}
	}
	required("SERVICE_ANON_KEY", cfg.Identity.AnonKey)
	required("SERVICE_ROLE_KEY", cfg.Identity.ServiceRoleKey)

	if required("CACHE_URL", cfg.Cache.URL) {
		if err := validateURL(cfg.Cache.URL, "http", "https", "redis", "rediss"); err != nil {
			invalid("CACHE_URL", "%v", err)
		}
	}
	required("CACHE_TOKEN", cfg.Cache.Token)

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		invalid("PORT", "%d is not in range 1..65535", cfg.Server.Port)
	}

	if cfg.Identity.RequestTimeout <= 0 {
		invalid("SERVICE_REQUEST_TIMEOUT", "must be positive")
	}
	if cfg.Cache.RequestTimeout <= 0 {
		invalid("CACHE_REQUEST_TIMEOUT", "must be positive")
	}
	if cfg.Cache.VerificationTTL < 0 {
		invalid("CACHE_VERIFICATION_TTL", "must not be negative")
	}
	if cfg.Server.ReadHeaderTimeout <= 0 {
		invalid("SERVER_READ_HEADER_TIMEOUT", "must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		invalid("SERVER_SHUTDOWN_TIMEOUT", "must be positive")
	}

	if slices.Contains(cfg.CORS.AllowedOrigins, "*") && cfg.CORS.AllowCredentials {
		invalid("CORS_ALLOWED_ORIGINS", "wildcard origin cannot be combined with CORS_ALLOW_CREDENTIALS")
	}
	if cfg.CORS.MaxAge < 0 {
		invalid("CORS_MAX_AGE", "must not be negative")
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		invalid("LOG_LEVEL", "%q is not a log level", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		invalid("LOG_FORMAT", "%q is not one of json, console", cfg.Log.Format)
	}

	return errors.Join(errs...)
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Host == "" {
		return errors.New("address must include a host")
	}
	if !slices.Contains(schemes, u.Scheme) {
		return fmt.Errorf("scheme %q is not one of %s", u.Scheme, strings.Join(schemes, ", "))
	}

	return nil
}
