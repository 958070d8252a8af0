// File: internal/metrics/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus collector for thread pool activity. It implements the pool
// Observer contract, so wiring it is a single WithObserver option.
//
// Exposed series (namespace "crsync", subsystem "pool"):
//
//	jobs_enqueued_total, jobs_rejected_total, jobs_completed_total,
//	jobs_panicked_total, thread_create_failures_total  (counters)
//	jobs_pending, jobs_in_flight, workers              (gauges)
//	job_wait_seconds, job_run_seconds                  (histograms)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/crsync/internal/concurrency"
)

var _ concurrency.Observer = (*Collector)(nil)

// Collector holds the pool series.
type Collector struct {
	jobsEnqueued   prometheus.Counter
	jobsRejected   prometheus.Counter
	jobsCompleted  prometheus.Counter
	jobsPanicked   prometheus.Counter
	threadFailures prometheus.Counter

	jobsPending  prometheus.Gauge
	jobsInFlight prometheus.Gauge
	workers      prometheus.Gauge

	jobWait prometheus.Histogram
	jobRun  prometheus.Histogram
}

// NewCollector creates the series and registers them with reg. A nil reg
// uses prometheus.DefaultRegisterer. The pool label distinguishes pools
// sharing a registry.
func NewCollector(reg prometheus.Registerer, pool string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"pool": pool}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crsync", Subsystem: "pool", Name: name, Help: help, ConstLabels: labels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crsync", Subsystem: "pool", Name: name, Help: help, ConstLabels: labels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crsync", Subsystem: "pool", Name: name, Help: help, ConstLabels: labels, Buckets: buckets,
		})
	}

	c := &Collector{
		jobsEnqueued:   counter("jobs_enqueued_total", "Total number of jobs accepted by the pool"),
		jobsRejected:   counter("jobs_rejected_total", "Total number of jobs rejected because the pool was stopped"),
		jobsCompleted:  counter("jobs_completed_total", "Total number of jobs that ran to completion"),
		jobsPanicked:   counter("jobs_panicked_total", "Total number of jobs that panicked"),
		threadFailures: counter("thread_create_failures_total", "Total number of worker threads that could not be created"),
		jobsPending:    gauge("jobs_pending", "Jobs queued and not yet taken by a worker"),
		jobsInFlight:   gauge("jobs_in_flight", "Jobs currently executing"),
		workers:        gauge("workers", "Worker threads owned by the pool"),
		jobWait:        histogram("job_wait_seconds", "Time a job spent queued", prometheus.ExponentialBuckets(0.00001, 4, 10)),
		jobRun:         histogram("job_run_seconds", "Job execution time", prometheus.DefBuckets),
	}

	reg.MustRegister(
		c.jobsEnqueued, c.jobsRejected, c.jobsCompleted, c.jobsPanicked, c.threadFailures,
		c.jobsPending, c.jobsInFlight, c.workers,
		c.jobWait, c.jobRun,
	)
	return c
}

// JobEnqueued records an accepted job.
func (c *Collector) JobEnqueued() {
	c.jobsEnqueued.Inc()
	c.jobsPending.Inc()
}

// JobRejected records a job refused by a stopped pool.
func (c *Collector) JobRejected() {
	c.jobsRejected.Inc()
}

// JobStarted records a dequeue and the time the job waited.
func (c *Collector) JobStarted(wait time.Duration) {
	c.jobsPending.Dec()
	c.jobsInFlight.Inc()
	c.jobWait.Observe(wait.Seconds())
}

// JobFinished records completion of a job.
func (c *Collector) JobFinished(run time.Duration, panicked bool) {
	c.jobsInFlight.Dec()
	c.jobRun.Observe(run.Seconds())
	if panicked {
		c.jobsPanicked.Inc()
		return
	}
	c.jobsCompleted.Inc()
}

// WorkersChanged sets the worker gauge.
func (c *Collector) WorkersChanged(n int) {
	c.workers.Set(float64(n))
}

// ThreadFailed records a worker that could not be created.
func (c *Collector) ThreadFailed() {
	c.threadFailures.Inc()
}
