// File: internal/concurrency/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "sync"

// Mutex is an exclusive, non-reentrant lock. Locking it twice from the same
// owner deadlocks, as the native primitive does. The zero value is unlocked.
type Mutex struct {
	mu sync.Mutex
}

// Lock blocks until the mutex is acquired.
func (m *Mutex) Lock() {
	m.mu.Lock()
}

// Unlock releases the mutex. Only the owner may call it.
func (m *Mutex) Unlock() {
	m.mu.Unlock()
}

// TryLock acquires the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	return m.mu.TryLock()
}
