// Package api
// Author: momentics
//
// Lock and wait/notify contracts implemented by the concurrency layer.

package api

import "time"

// Locker is an exclusive, non-reentrant lock.
type Locker interface {
	Lock()
	Unlock()
	TryLock() bool
}

// Waiter is a condition-variable style primitive bound to a Locker.
// Wakeups may be spurious; callers loop on their predicate.
type Waiter interface {
	Lock()
	Unlock()

	// Notify wakes at least one waiter.
	Notify()

	// Broadcast wakes every current waiter when CanBroadcast is true,
	// otherwise one.
	Broadcast()

	// CanBroadcast reports native wake-all support.
	CanBroadcast() bool

	// Wait blocks until notified. The lock must be held.
	Wait()

	// WaitTimeout blocks up to d and returns false on timeout.
	WaitTimeout(d time.Duration) bool
}
