// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline composes the gateway's request handling.
//
// A [Dispatcher] runs an explicit, ordered list of [Stage]s followed by a
// terminal handler (the route tree). Each stage either forwards a request to
// the next stage, answers the request itself, or fails with an error. Route
// handlers report failures through [Handle]. Every error, including recovered
// panics, reaches the dispatcher's error handler exactly once.
//
// Per-request state lives in a [RequestContext] that the dispatcher creates
// at request entry and discards at exit.
package pipeline
