// File: adapters/executor_adapter_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package adapters

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/momentics/crsync/internal/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() concurrency.Option {
	return concurrency.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExecutorAdapterRunsAllTasks(t *testing.T) {
	ea, err := NewExecutorAdapter(3, quiet())
	require.NoError(t, err)
	assert.Equal(t, 3, ea.NumWorkers())

	var n atomic.Int64
	for i := 0; i < 500; i++ {
		require.NoError(t, ea.Submit(func() { n.Add(1) }))
	}
	require.NoError(t, ea.Shutdown())

	assert.EqualValues(t, 500, n.Load())
	assert.Equal(t, 0, ea.Pending())
	assert.Equal(t, 0, ea.NumWorkers())
	assert.False(t, ea.Stats().Running)
}

func TestExecutorAdapterRejectsAfterClose(t *testing.T) {
	ea, err := NewExecutorAdapter(1, quiet())
	require.NoError(t, err)
	ea.Close()

	assert.ErrorIs(t, ea.Submit(func() {}), concurrency.ErrPoolStopped)
	assert.ErrorIs(t, ea.Submit(nil), concurrency.ErrNilJob)
}

func TestExecutorAdapterInvalidWorkers(t *testing.T) {
	ea, err := NewExecutorAdapter(0, quiet())
	assert.ErrorIs(t, err, concurrency.ErrInvalidWorkerCount)
	assert.Nil(t, ea)
}

func TestWrapPoolStats(t *testing.T) {
	p := concurrency.NewThreadPool(quiet())
	require.NoError(t, p.Startup(2))
	ea := WrapPool(p)
	defer ea.Close()

	st := ea.Stats()
	assert.True(t, st.Running)
	assert.Equal(t, 2, st.Workers)
}
