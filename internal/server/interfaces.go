package server

import "context"

// Server defines the lifecycle contract of the gateway's listener.
//
// Run blocks until ctx is cancelled or a stop signal arrives and then shuts
// down gracefully. Shutdown may be called from another goroutine to stop a
// running server early.
type Server interface {
	// RunServer is Run with a background context.
	RunServer() error

	// Run binds the listener, serves requests and blocks until stopped.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server within the configured timeout.
	Shutdown() error
}
