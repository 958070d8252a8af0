//go:build linux

// File: internal/platform/threadid_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

import "golang.org/x/sys/unix"

// ThreadID returns the kernel id of the calling OS thread.
// Only meaningful while the goroutine is locked to its thread.
func ThreadID() int {
	return unix.Gettid()
}
