// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "errors"

var (
	// ErrPoolStopped indicates the pool is not running and rejects jobs
	ErrPoolStopped = errors.New("thread pool is stopped")

	// ErrAlreadyRunning indicates Startup was called on a running pool
	ErrAlreadyRunning = errors.New("thread pool already running")

	// ErrInvalidWorkerCount indicates invalid worker count configuration
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrPartialStartup indicates only some workers could be created
	ErrPartialStartup = errors.New("thread pool started under-provisioned")

	// ErrNoWorkers indicates no worker thread could be created
	ErrNoWorkers = errors.New("thread pool could not create any worker")

	// ErrNilJob indicates a nil job was submitted
	ErrNilJob = errors.New("nil job")
)
