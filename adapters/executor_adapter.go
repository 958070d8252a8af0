// File: adapters/executor_adapter.go
// Package adapters provides glue between internal concurrency and api contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements api.Executor by delegating to a ThreadPool.
// Tasks run FIFO on the pool's workers; Close drains accepted tasks and
// joins the workers.

package adapters

import (
	"github.com/momentics/crsync/api"
	"github.com/momentics/crsync/internal/concurrency"
)

// ExecutorAdapter wraps a ThreadPool to satisfy api.Executor.
type ExecutorAdapter struct {
	pool *concurrency.ThreadPool
}

var (
	_ api.Executor         = (*ExecutorAdapter)(nil)
	_ api.GracefulShutdown = (*ExecutorAdapter)(nil)
)

// NewExecutorAdapter starts a pool with the given number of workers. A
// partially started pool is returned together with its error; callers may
// keep using it.
func NewExecutorAdapter(workers int, opts ...concurrency.Option) (*ExecutorAdapter, error) {
	p := concurrency.NewThreadPool(opts...)
	if err := p.Startup(workers); err != nil {
		if !p.Running() {
			return nil, err
		}
		return &ExecutorAdapter{pool: p}, err
	}
	return &ExecutorAdapter{pool: p}, nil
}

// WrapPool adapts an already configured pool. Its lifecycle stays with the caller
// until Close or Shutdown is called on the adapter.
func WrapPool(p *concurrency.ThreadPool) *ExecutorAdapter {
	return &ExecutorAdapter{pool: p}
}

// Submit enqueues task. It fails once the pool is stopped.
func (ea *ExecutorAdapter) Submit(task func()) error {
	if task == nil {
		return concurrency.ErrNilJob
	}
	return ea.pool.Enqueue(task)
}

// NumWorkers returns the number of worker threads.
func (ea *ExecutorAdapter) NumWorkers() int {
	return ea.pool.ThreadCount()
}

// Pending returns the number of queued tasks.
func (ea *ExecutorAdapter) Pending() int {
	return ea.pool.Jobs()
}

// Stats returns a snapshot of the pool.
func (ea *ExecutorAdapter) Stats() api.PoolStats {
	return api.PoolStats{
		Running: ea.pool.Running(),
		Workers: ea.pool.ThreadCount(),
		Pending: ea.pool.Jobs(),
	}
}

// Shutdown drains the queue and joins every worker.
func (ea *ExecutorAdapter) Shutdown() error {
	ea.pool.Shutdown()
	return nil
}

// Close is Shutdown without a result.
func (ea *ExecutorAdapter) Close() {
	ea.pool.Shutdown()
}
