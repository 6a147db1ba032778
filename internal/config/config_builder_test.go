package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validEnv is the minimal environment that passes validation.
func validEnv() map[string]string {
	return map[string]string{
		"SERVICE_URL":      "https://identity.example.com",
		"SERVICE_ANON_KEY": "anon",
		"SERVICE_ROLE_KEY": "role",
		"CACHE_URL":        "https://cache.example.com",
		"CACHE_TOKEN":      "token",
	}
}

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierConfigWins verifies the merge priority: a non-zero field
// in an earlier config is not overwritten by a later one, while zero fields
// are filled.
func TestBuild_EarlierConfigWins(t *testing.T) {
	setEnvVars(t, validEnv())
	envCfg := &StructuredConfig{}
	require.NoError(t, parseEnv(envCfg))

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{Port: 9999}},
		envCfg,
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "anon", cfg.Identity.AnonKey)
	assert.Equal(t, 5*time.Second, cfg.Identity.RequestTimeout)
}

func TestBuild_InvalidMergedConfigReturnsNil(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestGetStructuredConfig_FromEnvironment(t *testing.T) {
	setEnvVars(t, validEnv())

	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://identity.example.com", cfg.Identity.URL)
	assert.Equal(t, "https://cache.example.com", cfg.Cache.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestGetStructuredConfig_FlagOverridesEnvironment(t *testing.T) {
	env := validEnv()
	env["PORT"] = "8081"
	env["LOG_LEVEL"] = "warn"
	setEnvVars(t, env)

	cfg, err := GetStructuredConfig([]string{"-p", "9191", "-log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestGetStructuredConfig_FromDotEnvFile(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVICE_URL": "https://real-env.example.com"})
	path := writeDotEnv(t, `SERVICE_URL=https://file.example.com
SERVICE_ANON_KEY=anon
SERVICE_ROLE_KEY=role
CACHE_URL=redis://cache.internal:6379/0
CACHE_TOKEN=token
PORT=7000
`)

	cfg, err := GetStructuredConfig([]string{"-env-file", path})
	require.NoError(t, err)

	assert.Equal(t, "https://real-env.example.com", cfg.Identity.URL)
	assert.Equal(t, "redis://cache.internal:6379/0", cfg.Cache.URL)
	assert.Equal(t, 7000, cfg.Server.Port)
}

// TestGetStructuredConfig_EachRequiredFieldIsFatal verifies that omitting any
// single required variable fails the load and names that variable.
func TestGetStructuredConfig_EachRequiredFieldIsFatal(t *testing.T) {
	for name := range validEnv() {
		t.Run(name, func(t *testing.T) {
			env := validEnv()
			delete(env, name)
			setEnvVars(t, env)

			cfg, err := GetStructuredConfig(nil)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingRequired)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestGetStructuredConfig_MalformedPortIsFatal(t *testing.T) {
	env := validEnv()
	env["PORT"] = "not-a-port"
	setEnvVars(t, env)

	cfg, err := GetStructuredConfig(nil)
	assert.Nil(t, cfg)
	require.Error(t, err)
}

func TestGetStructuredConfig_BadFlagIsFatal(t *testing.T) {
	setEnvVars(t, validEnv())

	cfg, err := GetStructuredConfig([]string{"-unknown"})
	assert.Nil(t, cfg)
	require.Error(t, err)
}

func TestGetStructuredConfig_WildcardOriginWithSpacesIsFatal(t *testing.T) {
	env := validEnv()
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example, *"
	env["CORS_ALLOW_CREDENTIALS"] = "true"
	setEnvVars(t, env)

	cfg, err := GetStructuredConfig(nil)

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
}

func TestGetStructuredConfig_TrimsListEntries(t *testing.T) {
	env := validEnv()
	env["CORS_ALLOWED_ORIGINS"] = " https://a.example , ,https://b.example"
	env["CORS_ALLOWED_METHODS"] = "GET, POST"
	env["CORS_ALLOWED_HEADERS"] = "Content-Type, Authorization "
	setEnvVars(t, env)

	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
}
