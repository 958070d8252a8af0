// File: facade/crsync_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/crsync/api"
	"github.com/momentics/crsync/control"
	"github.com/momentics/crsync/facade"
	"github.com/momentics/crsync/internal/concurrency"
)

func quiet() facade.Option {
	return facade.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRuntimeLifecycle(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Workers = 3
	cfg.Metrics.Enabled = true

	rt, err := facade.New(cfg, quiet())
	require.NoError(t, err)
	assert.ErrorIs(t, rt.Submit(func() {}), concurrency.ErrPoolStopped, "not started yet")

	require.NoError(t, rt.Start())
	require.NoError(t, rt.Start(), "second start is a no-op")
	assert.Equal(t, 3, rt.Executor().NumWorkers())

	var n atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, rt.Submit(func() { n.Add(1) }))
	}
	require.NoError(t, rt.Shutdown())
	assert.EqualValues(t, 100, n.Load())
	assert.Equal(t, api.PoolStats{}, rt.Stats())
	require.NoError(t, rt.Stop(), "stop on stopped runtime is a no-op")

	rec := httptest.NewRecorder()
	rt.MetricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `crsync_pool_jobs_completed_total{pool="default"} 100`)
}

func TestRuntimeRestart(t *testing.T) {
	rt, err := facade.New(nil, quiet())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, rt.Start())
		assert.True(t, rt.Stats().Running)
		require.NoError(t, rt.Stop())
		assert.False(t, rt.Stats().Running)
	}
}

func TestRuntimeRejectsInvalidConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Workers = 0
	_, err := facade.New(cfg, quiet())
	assert.ErrorIs(t, err, control.ErrInvalidConfig)
}

func TestRuntimePartialStartupKeepsRunning(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Workers = 4
	cfg.Pool.MaxThreads = 2

	rt, err := facade.New(cfg, quiet())
	require.NoError(t, err)
	err = rt.Start()
	assert.ErrorIs(t, err, concurrency.ErrPartialStartup)
	assert.Equal(t, 2, rt.Stats().Workers)

	done := make(chan struct{})
	require.NoError(t, rt.Submit(func() { close(done) }))
	<-done
	require.NoError(t, rt.Stop())
	assert.Equal(t, 0, rt.Spawner().Live())
}

func TestRuntimeDebugProbes(t *testing.T) {
	rt, err := facade.New(nil, quiet())
	require.NoError(t, err)
	require.NoError(t, rt.Start())
	defer rt.Stop()

	state := rt.Debug().DumpState()
	assert.Contains(t, state, "platform.family")
	assert.Contains(t, state, "platform.symbols")
	stats, ok := state["pool.stats"].(api.PoolStats)
	require.True(t, ok)
	assert.Equal(t, 4, stats.Workers)
	assert.Equal(t, 4, state["spawner.live"])
}
