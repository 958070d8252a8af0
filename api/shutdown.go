// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown is implemented by components that own threads.
type GracefulShutdown interface {
	// Shutdown stops accepting work, drains what was accepted and joins
	// every owned thread before returning.
	Shutdown() error
}
