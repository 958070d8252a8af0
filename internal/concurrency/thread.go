// File: internal/concurrency/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread owns one OS thread running one callable. The goroutine behind it is
// locked to its OS thread for its whole life and exits still locked, which
// retires the OS thread instead of returning a pinned thread to the runtime.

package concurrency

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/momentics/crsync/affinity"
	"github.com/momentics/crsync/internal/platform"
	"github.com/momentics/crsync/internal/symbols"
)

// Func is the callable a Thread runs.
type Func func()

// noCopy trips go vet's copylocks check; a Thread is moved, never copied.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type threadHandle struct {
	name    string
	tid     int
	started chan struct{}
	done    chan struct{}
}

// Thread is a handle to a running OS thread. It is owned by one goroutine
// and its methods are not safe for concurrent use.
type Thread struct {
	_ noCopy
	h *threadHandle
}

// OK reports whether the thread was created and is still owned by this handle.
func (t *Thread) OK() bool {
	return t.h != nil
}

// Join blocks until the callable returns. Later calls are no-ops.
func (t *Thread) Join() {
	if t.h == nil {
		return
	}
	<-t.h.done
	t.h = nil
}

// Detach gives up the handle without waiting. The callable keeps running.
func (t *Thread) Detach() {
	t.h = nil
}

// Move transfers ownership to a new handle and empties t.
func (t *Thread) Move() *Thread {
	out := &Thread{h: t.h}
	t.h = nil
	return out
}

// Name returns the name given at spawn time.
func (t *Thread) Name() string {
	if t.h == nil {
		return ""
	}
	return t.h.name
}

// NativeID returns the OS thread id, or -1 if unknown or not owned.
func (t *Thread) NativeID() int {
	if t.h == nil {
		return -1
	}
	<-t.h.started
	return t.h.tid
}

type threadConfig struct {
	name string
	cpu  int
}

// ThreadOption configures a spawned thread.
type ThreadOption func(*threadConfig)

// WithName labels the thread in logs.
func WithName(name string) ThreadOption {
	return func(c *threadConfig) { c.name = name }
}

// WithCPU pins the thread to a logical CPU. Pinning failures are logged and
// the thread runs unpinned.
func WithCPU(cpu int) ThreadOption {
	return func(c *threadConfig) { c.cpu = cpu }
}

// Spawner creates Threads. It owns the resolved native entry points and an
// optional budget of live threads.
type Spawner struct {
	resolver   *symbols.Resolver
	maxThreads int64
	live       atomic.Int64
	logger     *slog.Logger
}

// SpawnerOption configures a Spawner.
type SpawnerOption func(*Spawner)

// WithMaxThreads caps live threads; 0 means unlimited.
func WithMaxThreads(n int) SpawnerOption {
	return func(s *Spawner) { s.maxThreads = int64(n) }
}

// WithResolver supplies an already built resolver.
func WithResolver(r *symbols.Resolver) SpawnerOption {
	return func(s *Spawner) { s.resolver = r }
}

// WithSpawnerLogger sets the logger for creation failures.
func WithSpawnerLogger(l *slog.Logger) SpawnerOption {
	return func(s *Spawner) { s.logger = l }
}

// NewSpawner builds a Spawner, resolving native entry points eagerly.
func NewSpawner(opts ...SpawnerOption) *Spawner {
	s := &Spawner{}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = symbols.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Live returns the number of threads that have not finished yet.
func (s *Spawner) Live() int {
	return int(s.live.Load())
}

// Spawn starts fn on a new OS thread. Check OK on the result: on failure
// fn is discarded and never runs.
func (s *Spawner) Spawn(fn Func, opts ...ThreadOption) *Thread {
	cfg := threadConfig{cpu: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if fn == nil {
		return &Thread{}
	}
	if sym := s.resolver.Lookup(symbols.EntryCreate); !sym.Valid() {
		s.logger.Error("thread create entry point unresolved", "thread", cfg.name, "symbol", sym.Name)
		return &Thread{}
	}
	if !s.acquire() {
		s.logger.Warn("thread budget exhausted", "thread", cfg.name, "max", s.maxThreads)
		return &Thread{}
	}

	h := &threadHandle{
		name:    cfg.name,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go func() {
		runtime.LockOSThread()
		defer close(h.done)
		defer s.release()

		h.tid = platform.ThreadID()
		close(h.started)
		if cfg.cpu >= 0 {
			if err := affinity.SetAffinity(cfg.cpu); err != nil {
				s.logger.Warn("thread affinity not applied", "thread", cfg.name, "cpu", cfg.cpu, "err", err)
			}
		}
		fn()
	}()
	return &Thread{h: h}
}

func (s *Spawner) acquire() bool {
	for {
		n := s.live.Load()
		if s.maxThreads > 0 && n >= s.maxThreads {
			return false
		}
		if s.live.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (s *Spawner) release() {
	s.live.Add(-1)
}
