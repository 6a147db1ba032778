// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// gateway.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats accepted by WithFormat.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

type options struct {
	out    io.Writer
	level  zerolog.Level
	format string
}

// Option customises a logger built by NewLogger.
type Option func(*options)

// WithLevel sets the minimum level emitted by the logger.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithFormat switches between JSON output (FormatJSON, the default) and a
// human-readable console output (FormatConsole). Unknown values fall back to
// JSON.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithOutput redirects log output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "gateway").
//
// The logger is configured with:
//   - global log level set to Debug, the per-instance level comes from
//     WithLevel (Debug when omitted);
//   - a "role" field set to role, useful for filtering logs from different
//     application components;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Output is written to os.Stdout in JSON format unless options say otherwise.
func NewLogger(role string, opts ...Option) *Logger {
	o := options{
		out:    os.Stdout,
		level:  zerolog.DebugLevel,
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(&o)
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	out := o.out
	if o.format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: o.out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(o.level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
//
// This is typically used in pipeline stages after the dispatcher has attached
// a request-scoped logger to the context via zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger
// (a disabled one unless zerolog.DefaultContextLogger is set), so this
// function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
