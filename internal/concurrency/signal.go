// File: internal/concurrency/signal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Signal is a wait/notify primitive over a Mutex. Waiters must hold the
// mutex; it is released while blocked and held again when the wait returns.
// Wakeups may be spurious, so callers re-check their predicate in a loop.

package concurrency

import (
	"time"

	"github.com/momentics/crsync/internal/platform"
)

// waitSet is the native wait object behind a Signal.
type waitSet interface {
	// wait releases m, blocks until notified or timeout elapses, then
	// re-acquires m. A negative timeout blocks forever.
	wait(m *Mutex, timeout time.Duration) bool
	notify()
	// broadcast wakes every current waiter; false if unsupported.
	broadcast() bool
	canBroadcast() bool
}

// Signal couples a Mutex with a wait set.
type Signal struct {
	m  *Mutex
	ws waitSet
}

// NewSignal returns a Signal guarding m with the build's native wait set.
// A nil m gets a fresh Mutex.
func NewSignal(m *Mutex) *Signal {
	return newSignal(m, newNativeWaitSet())
}

func newSignal(m *Mutex, ws waitSet) *Signal {
	if m == nil {
		m = &Mutex{}
	}
	return &Signal{m: m, ws: ws}
}

func newNativeWaitSet() waitSet {
	if platform.NativeBroadcast {
		return newCondWaitSet()
	}
	return newEventWaitSet()
}

// Mutex returns the associated lock.
func (s *Signal) Mutex() *Mutex { return s.m }

// Lock acquires the associated mutex.
func (s *Signal) Lock() { s.m.Lock() }

// Unlock releases the associated mutex.
func (s *Signal) Unlock() { s.m.Unlock() }

// Notify wakes at least one waiter, if any.
func (s *Signal) Notify() { s.ws.notify() }

// CanBroadcast reports whether Broadcast reaches every waiter natively.
func (s *Signal) CanBroadcast() bool { return s.ws.canBroadcast() }

// Broadcast wakes all current waiters. Without native support it wakes one,
// and each woken waiter is expected to Notify once before leaving.
func (s *Signal) Broadcast() {
	if !s.ws.broadcast() {
		s.ws.notify()
	}
}

// Wait blocks until notified. The mutex must be held.
func (s *Signal) Wait() {
	s.ws.wait(s.m, -1)
}

// WaitTimeout blocks until notified or d elapses. It returns false on
// timeout. The mutex must be held.
func (s *Signal) WaitTimeout(d time.Duration) bool {
	if d < 0 {
		d = 0
	}
	return s.ws.wait(s.m, d)
}
