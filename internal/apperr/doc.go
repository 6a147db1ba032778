// Package apperr defines the gateway's pipeline error: a failure value that
// carries a machine-readable [Kind] and a client-safe message alongside the
// original cause.
//
// Every kind maps to exactly one HTTP status (see [Status]). Errors that do
// not carry a kind are classified as [KindInternal] by [From], which never
// exposes the cause's text.
package apperr
