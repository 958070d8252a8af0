// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable blocking concurrency primitives: Mutex, Signal (a condition
// variable with timed waits and a named broadcast capability), Thread (one OS
// thread running one callable) and ThreadPool (fixed workers over one FIFO
// job queue).
//
// The native family is fixed at build time by internal/platform. Families
// with a wake-all primitive get a native wait set; legacy Windows builds get
// an auto-reset event and rely on chained re-notify instead of broadcast.
package concurrency
