// File: internal/metrics/metrics_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package metrics

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/crsync/internal/concurrency"
)

func TestNewCollectorRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")
	require.NotNil(t, c)

	c.JobEnqueued()
	c.WorkersChanged(1)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Panics(t, func() { NewCollector(reg, "test") }, "duplicate registration must fail loudly")
}

func TestCollectorLifecycle(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), "test")

	c.JobEnqueued()
	c.JobEnqueued()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobsPending))

	c.JobStarted(time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsPending))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsInFlight))

	c.JobFinished(time.Millisecond, false)
	c.JobStarted(time.Millisecond)
	c.JobFinished(time.Millisecond, true)

	assert.Equal(t, 0.0, testutil.ToFloat64(c.jobsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsPanicked))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobsEnqueued))

	c.JobRejected()
	c.ThreadFailed()
	c.WorkersChanged(3)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.threadFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.workers))
}

func TestCollectorObservesPool(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry(), "observed")
	p := concurrency.NewThreadPool(
		concurrency.WithObserver(c),
		concurrency.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, p.Startup(2))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.workers))

	var n atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Enqueue(func() { n.Add(1) }))
	}
	p.Shutdown()

	assert.Equal(t, int64(100), n.Load())
	assert.Equal(t, 100.0, testutil.ToFloat64(c.jobsEnqueued))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.jobsCompleted))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.jobsPending))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.workers))
}
