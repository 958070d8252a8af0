// File: internal/concurrency/waitset_event.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Auto-reset event wait set for families without a condition variable.
// A set event releases exactly one waiter and then resets; a set made while
// nobody waits is kept for the next waiter. There is no wake-all.

package concurrency

import "time"

type eventWaitSet struct {
	event chan struct{}
}

func newEventWaitSet() *eventWaitSet {
	return &eventWaitSet{event: make(chan struct{}, 1)}
}

func (ws *eventWaitSet) wait(m *Mutex, timeout time.Duration) bool {
	m.Unlock()
	defer m.Lock()

	if timeout < 0 {
		<-ws.event
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ws.event:
		return true
	case <-timer.C:
		return false
	}
}

func (ws *eventWaitSet) notify() {
	select {
	case ws.event <- struct{}{}:
	default:
	}
}

func (ws *eventWaitSet) broadcast() bool { return false }

func (ws *eventWaitSet) canBroadcast() bool { return false }
