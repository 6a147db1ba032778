// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apperr

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable class of a pipeline failure.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindUnauthenticated     Kind = "unauthenticated"
	KindForbidden           Kind = "forbidden"
	KindNotFound            Kind = "not-found"
	KindUpstreamUnavailable Kind = "upstream-unavailable"
	KindInternal            Kind = "internal"
)

var kindStatusMap = map[Kind]int{
	KindValidation:          http.StatusBadRequest,
	KindUnauthenticated:     http.StatusUnauthorized,
	KindForbidden:           http.StatusForbidden,
	KindNotFound:            http.StatusNotFound,
	KindUpstreamUnavailable: http.StatusServiceUnavailable,
	KindInternal:            http.StatusInternalServerError,
}

// defaultMessages are used when an error is created without a message and
// for every error classified as internal.
var defaultMessages = map[Kind]string{
	KindValidation:          "invalid request",
	KindUnauthenticated:     "authentication required",
	KindForbidden:           "access denied",
	KindNotFound:            "resource not found",
	KindUpstreamUnavailable: "upstream service unavailable",
	KindInternal:            "internal server error",
}

// Status returns the HTTP status for kind. Unknown kinds map to 500.
func Status(kind Kind) int {
	if status, ok := kindStatusMap[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a classified pipeline failure.
//
// Message is safe to show to clients; Err is the original cause and is only
// ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New returns a pipeline error of the given kind. An empty message is
// replaced with the kind's default message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: messageOrDefault(kind, message)}
}

// Wrap returns a pipeline error of the given kind that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: messageOrDefault(kind, message), Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status mapped to the error's kind.
func (e *Error) Status() int {
	return Status(e.Kind)
}

// Validation returns a validation error with the given client-safe message.
func Validation(message string) *Error { return New(KindValidation, message) }

// Unauthenticated returns an unauthenticated error with the given message.
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Forbidden returns a forbidden error with the given message.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound returns a not-found error with the given message.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// UpstreamUnavailable wraps err as an upstream-unavailable error.
func UpstreamUnavailable(err error) *Error { return Wrap(KindUpstreamUnavailable, "", err) }

// Internal wraps err as an internal error with the generic message.
func Internal(err error) *Error { return Wrap(KindInternal, "", err) }

// From classifies err. A *Error anywhere in the chain is returned as is,
// except that internal errors always carry the generic message. Anything
// else becomes an internal error whose message never echoes err's text.
// From(nil) returns nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		if _, known := kindStatusMap[pipelineErr.Kind]; !known || pipelineErr.Kind == KindInternal {
			return &Error{Kind: KindInternal, Message: defaultMessages[KindInternal], Err: err}
		}
		return pipelineErr
	}

	return &Error{Kind: KindInternal, Message: defaultMessages[KindInternal], Err: err}
}

func messageOrDefault(kind Kind, message string) string {
	if message != "" {
		return message
	}
	if def, ok := defaultMessages[kind]; ok {
		return def
	}
	return defaultMessages[KindInternal]
}
