// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadPool runs Jobs on a fixed set of worker Threads fed from one FIFO
// queue guarded by one Signal. Producers append and notify; workers pop and
// run the job with no lock held. Shutdown rejects new jobs under the same
// lock that stops the pool, so every accepted job is drained before the
// workers exit.

package concurrency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/eapache/queue"
)

// Job is one deferred unit of work.
type Job func()

// Observer receives pool events. Implementations must not block and must
// not call back into the pool: JobEnqueued runs under the queue lock so it
// is ordered before the matching JobStarted.
type Observer interface {
	JobEnqueued()
	JobRejected()
	JobStarted(wait time.Duration)
	JobFinished(run time.Duration, panicked bool)
	WorkersChanged(n int)
	ThreadFailed()
}

type nopObserver struct{}

func (nopObserver) JobEnqueued()                    {}
func (nopObserver) JobRejected()                    {}
func (nopObserver) JobStarted(time.Duration)        {}
func (nopObserver) JobFinished(time.Duration, bool) {}
func (nopObserver) WorkersChanged(int)              {}
func (nopObserver) ThreadFailed()                   {}

type queuedJob struct {
	job Job
	at  time.Time
}

// Option configures a ThreadPool.
type Option func(*ThreadPool)

// WithLogger sets the pool logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *ThreadPool) { p.logger = l }
}

// WithObserver installs an event observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(p *ThreadPool) { p.observer = o }
}

// WithSpawner sets the thread factory.
func WithSpawner(s *Spawner) Option {
	return func(p *ThreadPool) { p.spawner = s }
}

// WithAffinity pins worker i to cpus[i%len(cpus)].
func WithAffinity(cpus []int) Option {
	return func(p *ThreadPool) { p.cpus = append([]int(nil), cpus...) }
}

// WithPoolName prefixes worker thread names.
func WithPoolName(name string) Option {
	return func(p *ThreadPool) { p.name = name }
}

// ThreadPool is Stopped until Startup and again after Shutdown.
type ThreadPool struct {
	lifecycle Mutex // serializes Startup and Shutdown

	signal    *Signal
	jobs      *queue.Queue
	threads   []*Thread
	running   bool // workers keep waiting for jobs
	accepting bool // Enqueue admits jobs; set together with threads

	spawner  *Spawner
	observer Observer
	logger   *slog.Logger
	cpus     []int
	name     string
}

// NewThreadPool returns a stopped pool.
func NewThreadPool(opts ...Option) *ThreadPool {
	p := &ThreadPool{
		signal: NewSignal(nil),
		jobs:   queue.New(),
		name:   "pool",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.observer == nil {
		p.observer = nopObserver{}
	}
	if p.spawner == nil {
		p.spawner = NewSpawner(WithSpawnerLogger(p.logger))
	}
	return p
}

// Startup clears the queue and starts workers. When only some threads can
// be created the pool runs with those and the error wraps ErrPartialStartup;
// when none can, the pool stays stopped and the error wraps ErrNoWorkers.
func (p *ThreadPool) Startup(workers int) error {
	if workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, workers)
	}
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.signal.Lock()
	if p.running {
		p.signal.Unlock()
		return ErrAlreadyRunning
	}
	p.jobs = queue.New()
	p.running = true
	p.signal.Unlock()

	threads := make([]*Thread, 0, workers)
	for i := 0; i < workers; i++ {
		t := p.spawner.Spawn(p.work, p.threadOptions(i)...)
		if !t.OK() {
			p.observer.ThreadFailed()
			continue
		}
		threads = append(threads, t)
	}

	if len(threads) == 0 {
		p.signal.Lock()
		p.running = false
		p.signal.Unlock()
		p.logger.Error("thread pool startup failed", "pool", p.name, "requested", workers)
		return fmt.Errorf("%w: requested %d", ErrNoWorkers, workers)
	}

	p.signal.Lock()
	p.threads = threads
	p.accepting = true
	p.signal.Unlock()
	p.observer.WorkersChanged(len(threads))

	if len(threads) < workers {
		p.logger.Warn("thread pool under-provisioned", "pool", p.name, "workers", len(threads), "requested", workers)
		return fmt.Errorf("%w: %d of %d workers", ErrPartialStartup, len(threads), workers)
	}
	p.logger.Info("thread pool started", "pool", p.name, "workers", len(threads))
	return nil
}

func (p *ThreadPool) threadOptions(i int) []ThreadOption {
	opts := []ThreadOption{WithName(fmt.Sprintf("%s-worker-%d", p.name, i))}
	if len(p.cpus) > 0 {
		opts = append(opts, WithCPU(p.cpus[i%len(p.cpus)]))
	}
	return opts
}

// Shutdown stops accepting jobs, lets workers drain the queue and joins
// them. It is a no-op on a stopped pool. It must not be called from a Job.
func (p *ThreadPool) Shutdown() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.signal.Lock()
	if !p.running {
		p.signal.Unlock()
		return
	}
	p.running = false
	p.accepting = false
	p.signal.Broadcast()
	threads := p.threads
	p.signal.Unlock()

	for _, t := range threads {
		t.Join()
	}

	p.signal.Lock()
	p.threads = nil
	p.signal.Unlock()
	p.observer.WorkersChanged(0)
	p.logger.Info("thread pool stopped", "pool", p.name, "workers", len(threads))
}

// Enqueue appends job to the queue and wakes one worker.
func (p *ThreadPool) Enqueue(job Job) error {
	if job == nil {
		return ErrNilJob
	}
	p.signal.Lock()
	if !p.accepting {
		p.signal.Unlock()
		p.observer.JobRejected()
		return ErrPoolStopped
	}
	p.jobs.Add(queuedJob{job: job, at: time.Now()})
	p.observer.JobEnqueued()
	p.signal.Notify()
	p.signal.Unlock()
	return nil
}

// Jobs returns the number of queued jobs not yet taken by a worker.
func (p *ThreadPool) Jobs() int {
	p.signal.Lock()
	defer p.signal.Unlock()
	return p.jobs.Length()
}

// ThreadCount returns the number of workers owned by the pool.
func (p *ThreadPool) ThreadCount() int {
	p.signal.Lock()
	defer p.signal.Unlock()
	return len(p.threads)
}

// Running reports whether the pool accepts jobs.
func (p *ThreadPool) Running() bool {
	p.signal.Lock()
	defer p.signal.Unlock()
	return p.accepting
}

func (p *ThreadPool) work() {
	for {
		p.signal.Lock()
		for p.running && p.jobs.Length() == 0 {
			p.signal.Wait()
		}
		if !p.running && p.jobs.Length() == 0 {
			if !p.signal.CanBroadcast() {
				// pass the stop on to the next sleeper
				p.signal.Notify()
			}
			p.signal.Unlock()
			return
		}
		item := p.jobs.Remove().(queuedJob)
		p.signal.Unlock()

		p.run(item)
	}
}

// run executes one job, recovering panics to keep the worker alive.
func (p *ThreadPool) run(item queuedJob) {
	p.observer.JobStarted(time.Since(item.at))
	start := time.Now()
	defer func() {
		r := recover()
		if r != nil {
			p.logger.Error("job panicked", "pool", p.name, "panic", r)
		}
		p.observer.JobFinished(time.Since(start), r != nil)
	}()
	item.job()
}
