// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_EntryFields checks the fields every gateway log line carries.
func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("gateway", WithOutput(&buf))

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "gateway", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewLogger_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("gateway", WithOutput(&buf), WithFormat("xml"))

	l.Warn().Str("kind", "internal").Send()

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "internal", entry["kind"])
}

func TestNewLogger_WithLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("filter", WithOutput(&buf), WithLevel(zerolog.WarnLevel))

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewLogger_ConsoleFormatIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("console", WithOutput(&buf), WithFormat(FormatConsole))

	l.Info().Msg("pretty")

	assert.Contains(t, buf.String(), "pretty")
	var entry map[string]any
	assert.Error(t, json.Unmarshal(buf.Bytes(), &entry))
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	parent := NewLogger("parent", WithOutput(&bytes.Buffer{}))
	child := parent.GetChildLogger()
	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

// TestGetChildLogger_InheritsFields verifies that the child logger inherits
// context fields (e.g. "role") from the parent and that fields added to the
// child do not leak into the parent.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role", WithOutput(&buf))

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})
	child.Info().Msg("child message")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "inherited-role", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent message")
	entry = decodeEntry(t, &buf)
	_, leaked := entry["trace_id"]
	assert.False(t, leaked)
}

func TestFromContext_NotNil(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)

	// a disabled logger must be safe to use
	l.Info().Msg("nowhere")
}

func TestFromRequestAndContext_ReturnAttachedLogger(t *testing.T) {
	tests := []struct {
		name string
		get  func(ctx context.Context) *Logger
	}{
		{
			name: "from context",
			get:  FromContext,
		},
		{
			name: "from request",
			get: func(ctx context.Context) *Logger {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
				return FromRequest(req.WithContext(ctx))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zl := zerolog.New(&buf).With().Str("trace_id", "trace-1").Logger()

			tt.get(zl.WithContext(context.Background())).Info().Msg("attached")

			entry := decodeEntry(t, &buf)
			assert.Equal(t, "trace-1", entry["trace_id"])
			assert.Equal(t, "attached", entry["message"])
		})
	}
}
