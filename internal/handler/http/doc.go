// Package http implements the HTTP surface of the gateway.
//
// [NewHandler] assembles the request pipeline: the authentication gate,
// the cross-origin policy, access logging and the route tree, in that
// order, with the error normalizer as the single catch-all. Built-in routes
// are the liveness probe at "/", Prometheus metrics at "/metrics" and the
// readiness, version and "who am I" routes under the API base path. Other
// route trees plug in through [Routes].
package http
