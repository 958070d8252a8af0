// File: internal/concurrency/waitset_cond.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO wait set with per-waiter wakeup channels, the Go rendering of a
// pthread/Win32 condition variable. Timed-out waiters are marked abandoned
// and skipped by notify; the queue is compacted once they dominate it.

package concurrency

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

const (
	waiterBlocked = iota
	waiterSignaled
	waiterAbandoned
)

// compactThreshold is the abandoned count below which compaction is skipped.
const compactThreshold = 32

type waiter struct {
	ready chan struct{}
	state int // guarded by condWaitSet.mu
}

type condWaitSet struct {
	mu        sync.Mutex
	waiters   *queue.Queue
	abandoned int
}

func newCondWaitSet() *condWaitSet {
	return &condWaitSet{waiters: queue.New()}
}

func (ws *condWaitSet) wait(m *Mutex, timeout time.Duration) bool {
	w := &waiter{ready: make(chan struct{})}
	// registered before m is released so a notify under m cannot be lost
	ws.mu.Lock()
	ws.waiters.Add(w)
	ws.mu.Unlock()

	m.Unlock()
	defer m.Lock()

	if timeout < 0 {
		<-w.ready
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-w.ready:
		return true
	case <-timer.C:
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w.state == waiterSignaled {
		// notify won the race; consume it rather than drop it
		return true
	}
	w.state = waiterAbandoned
	ws.abandoned++
	ws.compactLocked()
	return false
}

func (ws *condWaitSet) notify() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for ws.waiters.Length() > 0 {
		if ws.wakeLocked(ws.waiters.Remove().(*waiter)) {
			return
		}
	}
}

func (ws *condWaitSet) broadcast() bool {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for ws.waiters.Length() > 0 {
		ws.wakeLocked(ws.waiters.Remove().(*waiter))
	}
	return true
}

func (ws *condWaitSet) canBroadcast() bool { return true }

func (ws *condWaitSet) wakeLocked(w *waiter) bool {
	if w.state == waiterAbandoned {
		ws.abandoned--
		return false
	}
	w.state = waiterSignaled
	close(w.ready)
	return true
}

func (ws *condWaitSet) compactLocked() {
	n := ws.waiters.Length()
	if ws.abandoned < compactThreshold || ws.abandoned*2 < n {
		return
	}
	live := queue.New()
	for i := 0; i < n; i++ {
		if w := ws.waiters.Get(i).(*waiter); w.state != waiterAbandoned {
			live.Add(w)
		}
	}
	ws.waiters = live
	ws.abandoned = 0
}

// pending reports queued waiters, abandoned ones included. Test hook.
func (ws *condWaitSet) pending() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.waiters.Length()
}
