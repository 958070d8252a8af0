// File: internal/concurrency/mutex_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexExclusion(t *testing.T) {
	var (
		m       Mutex
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				m.Lock()
				n := inside.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				inside.Add(-1)
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestMutexCounterUnderContention(t *testing.T) {
	var (
		m       Mutex
		counter int
		wg      sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10000; i++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 80000, counter)
}

func TestMutexTryLock(t *testing.T) {
	var m Mutex
	require.True(t, m.TryLock())

	acquired := make(chan bool)
	go func() { acquired <- m.TryLock() }()
	assert.False(t, <-acquired, "TryLock must fail while held elsewhere")

	m.Unlock()
	assert.True(t, m.TryLock())
	m.Unlock()
}
