// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/rs/zerolog"
)

// BasePath is the fixed prefix under which application routes are mounted.
const BasePath = "/api/v1"

// StructuredConfig is the top-level configuration container for the gateway.
// It aggregates all sub-configurations and is populated by merging values
// from command-line flags, environment variables, and an optional dotenv file.
//
// A *StructuredConfig returned by [GetStructuredConfig] has been validated and
// must be treated as read-only: it is shared by every concurrent request.
//
// Struct tags:
//   - envPrefix    - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env          - direct environment variable name for scalar fields.
//   - envDefault   - value used when the variable is absent.
//   - envSeparator - separator for list values.
type StructuredConfig struct {
	// Identity holds the endpoint and credentials of the identity service
	// that verifies bearer credentials.
	Identity Identity `envPrefix:"SERVICE_"`

	// Cache holds the endpoint and credentials of the key/value cache.
	Cache Cache `envPrefix:"CACHE_"`

	// Server holds the listener port and server-side timeouts.
	Server Server

	// CORS holds the cross-origin allow-lists.
	CORS CORS `envPrefix:"CORS_"`

	// Log controls level and output format of the process logger.
	Log Log `envPrefix:"LOG_"`

	// EnvFile is the optional path to a dotenv file loaded before the
	// environment is read. Variables already present in the environment win.
	// Populated via the ENV_FILE environment variable or the -env-file flag.
	EnvFile string `env:"ENV_FILE"`
}

// Identity holds connection settings for the identity-verification service.
type Identity struct {
	// URL is the base URL of the identity service (e.g. "https://xyz.example.co").
	// Required.
	// Env: SERVICE_URL
	URL string `env:"URL"`

	// AnonKey is the public API key sent with every identity call.
	// Required.
	// Env: SERVICE_ANON_KEY
	AnonKey string `env:"ANON_KEY"`

	// ServiceRoleKey is the privileged backend key. Required; it also keys the
	// HMAC that derives verification cache keys so that raw credentials never
	// reach the cache.
	// Env: SERVICE_ROLE_KEY
	ServiceRoleKey string `env:"ROLE_KEY"`

	// AdminKey is accepted for compatibility with existing deployments and is
	// otherwise unused. It grants nothing.
	// Env: SERVICE_ADMIN_KEY
	AdminKey string `env:"ADMIN_KEY"`

	// RequestTimeout bounds every outbound call to the identity service.
	// Env: SERVICE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
}

// Cache holds connection settings for the key/value cache service.
type Cache struct {
	// URL is the cache endpoint. http(s) URLs select the REST protocol,
	// redis(s) URLs select a native Redis connection. Required.
	// Env: CACHE_URL
	URL string `env:"URL"`

	// Token authenticates against the cache. For Redis URLs without a
	// password it is used as the password. Required.
	// Env: CACHE_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds every cache operation.
	// Env: CACHE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2s"`

	// VerificationTTL is the upper bound for caching a verified principal.
	// Zero disables verification caching.
	// Env: CACHE_VERIFICATION_TTL
	VerificationTTL time.Duration `env:"VERIFICATION_TTL"`
}

// Server holds listener settings for the inbound HTTP server.
type Server struct {
	// Port is the TCP port the HTTP server listens on.
	// Env: PORT
	Port int `env:"PORT" envDefault:"8080"`

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"10s"`

	// ShutdownTimeout bounds graceful shutdown after a stop signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// CORS holds the cross-origin policy.
type CORS struct {
	// AllowedOrigins is the closed set of origins that receive CORS headers.
	// A single "*" allows any origin and is rejected when AllowCredentials is set.
	// Env: CORS_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// AllowedMethods is advertised to preflight requests.
	// Env: CORS_ALLOWED_METHODS
	AllowedMethods []string `env:"ALLOWED_METHODS" envDefault:"GET,POST,PUT,PATCH,DELETE,OPTIONS" envSeparator:","`

	// AllowedHeaders is advertised to preflight requests. When empty the
	// requested headers are reflected.
	// Env: CORS_ALLOWED_HEADERS
	AllowedHeaders []string `env:"ALLOWED_HEADERS" envDefault:"Content-Type,Authorization" envSeparator:","`

	// ExposedHeaders lists response headers readable by browser scripts.
	// Env: CORS_EXPOSED_HEADERS
	ExposedHeaders []string `env:"EXPOSED_HEADERS" envDefault:"Content-Length,X-Trace-ID" envSeparator:","`

	// AllowCredentials permits credentialed cross-origin requests.
	// Env: CORS_ALLOW_CREDENTIALS
	AllowCredentials bool `env:"ALLOW_CREDENTIALS" envDefault:"true"`

	// MaxAge is how long, in seconds, a preflight result may be cached.
	// Env: CORS_MAX_AGE
	MaxAge int `env:"MAX_AGE" envDefault:"600"`
}

// Log controls the process logger.
type Log struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" envDefault:"info"`

	// Format is "json" or "console".
	// Env: LOG_FORMAT
	Format string `env:"FORMAT" envDefault:"json"`
}

// ZerologLevel returns the parsed log level, falling back to info for
// values that do not parse. Validation rejects such values at load time.
func (l Log) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Redacted returns a copy of cfg with every secret replaced by a fixed mask.
// Use it whenever the configuration is logged.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	cfg.Identity.AnonKey = mask(cfg.Identity.AnonKey)
	cfg.Identity.ServiceRoleKey = mask(cfg.Identity.ServiceRoleKey)
	cfg.Identity.AdminKey = mask(cfg.Identity.AdminKey)
	cfg.Cache.Token = mask(cfg.Cache.Token)
	return cfg
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}

// GetStructuredConfig loads, merges, and validates the gateway configuration
// from all available sources. args are the command-line arguments without
// the program name.
//
// Returns a fully populated *StructuredConfig or an error naming every
// offending setting if any source fails to load or validation fails.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withDotEnv().
		withEnv().
		build()
}
