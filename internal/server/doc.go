// Package server runs the gateway's HTTP listener.
//
// It binds the configured port, serves the assembled handler and, on
// SIGINT, SIGTERM or SIGQUIT, shuts down gracefully within the configured
// timeout.
package server
