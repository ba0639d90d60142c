package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// Listen binds the server address. It does not serve.
	Listen() error

	// RunServer serves on the bound listener and blocks until the server
	// stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
