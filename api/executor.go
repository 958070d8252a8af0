// Package api
// Author: momentics
//
// Executor contract for fire-and-forget task dispatch onto worker threads.

package api

// Executor abstracts a fixed pool of workers fed from one FIFO queue.
type Executor interface {
	// Submit schedules task for execution.
	Submit(task func()) error

	// NumWorkers returns current number of worker threads.
	NumWorkers() int

	// Pending returns the number of tasks queued and not yet started.
	Pending() int
}
