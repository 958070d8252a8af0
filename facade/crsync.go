// File: facade/crsync.go
// Unified facade layer for the crsync runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime aggregates the concurrency components behind one type: a symbol
// resolver and thread spawner, a worker pool with its Prometheus collector,
// and a debug probe registry. It is built from control.Config and exposes
// Start/Stop, task submission and introspection.

package facade

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/crsync/adapters"
	"github.com/momentics/crsync/api"
	"github.com/momentics/crsync/control"
	"github.com/momentics/crsync/internal/concurrency"
	"github.com/momentics/crsync/internal/metrics"
	"github.com/momentics/crsync/internal/symbols"
)

// Runtime is the main facade type.
type Runtime struct {
	cfg      *control.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	resolver *symbols.Resolver
	spawner  *concurrency.Spawner
	pool     *concurrency.ThreadPool
	exec     *adapters.ExecutorAdapter
	probes   *control.DebugProbes

	mu      sync.Mutex // guards started
	started bool
}

var _ api.GracefulShutdown = (*Runtime)(nil)

// Option customizes a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithRegistry sets the registry pool metrics are registered on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Runtime) { r.registry = reg }
}

// New validates cfg and wires the components. Nothing runs until Start.
func New(cfg *control.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runtime{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.resolver = symbols.New()
	if missing := r.resolver.Table().Missing(); len(missing) > 0 {
		r.logger.Warn("native entry points unresolved", "missing", fmt.Sprint(missing))
	}
	r.spawner = concurrency.NewSpawner(
		concurrency.WithResolver(r.resolver),
		concurrency.WithMaxThreads(cfg.Pool.MaxThreads),
		concurrency.WithSpawnerLogger(r.logger),
	)

	poolOpts := []concurrency.Option{
		concurrency.WithLogger(r.logger),
		concurrency.WithSpawner(r.spawner),
		concurrency.WithPoolName(cfg.Pool.Name),
		concurrency.WithAffinity(cfg.Pool.CPUs),
	}
	if cfg.Metrics.Enabled {
		poolOpts = append(poolOpts, concurrency.WithObserver(metrics.NewCollector(r.registry, cfg.Pool.Name)))
	}
	r.pool = concurrency.NewThreadPool(poolOpts...)
	r.exec = adapters.WrapPool(r.pool)

	r.probes = control.NewDebugProbes()
	control.RegisterPlatformProbes(r.probes, r.resolver)
	r.probes.RegisterProbe("pool.stats", func() any { return r.exec.Stats() })
	r.probes.RegisterProbe("spawner.live", func() any { return r.spawner.Live() })
	return r, nil
}

// Start launches the worker pool. A partially started pool keeps running
// and the error is returned for the caller to decide. Calling Start on a
// started Runtime is a no-op.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	err := r.pool.Startup(r.cfg.Pool.Workers)
	if err != nil && !errors.Is(err, concurrency.ErrPartialStartup) {
		return fmt.Errorf("pool startup: %w", err)
	}
	r.started = true
	return err
}

// Stop drains accepted tasks and joins the workers. Stop on a stopped
// Runtime is a no-op.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	r.pool.Shutdown()
	r.started = false
	return nil
}

// Shutdown implements api.GracefulShutdown by delegating to Stop.
func (r *Runtime) Shutdown() error {
	return r.Stop()
}

// Submit dispatches a task to the worker pool.
func (r *Runtime) Submit(task func()) error {
	return r.exec.Submit(task)
}

// Executor returns the pool as an api.Executor.
func (r *Runtime) Executor() api.Executor {
	return r.exec
}

// Spawner returns the thread spawner the pool uses.
func (r *Runtime) Spawner() *concurrency.Spawner {
	return r.spawner
}

// Debug returns the probe registry.
func (r *Runtime) Debug() api.Debug {
	return r.probes
}

// Stats returns a pool snapshot.
func (r *Runtime) Stats() api.PoolStats {
	return r.exec.Stats()
}

// Config returns the configuration the Runtime was built from.
func (r *Runtime) Config() *control.Config {
	return r.cfg
}

// MetricsHandler serves the Runtime's registry in Prometheus text format.
func (r *Runtime) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
