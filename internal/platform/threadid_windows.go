//go:build windows

// File: internal/platform/threadid_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

import "golang.org/x/sys/windows"

// ThreadID returns the Win32 id of the calling OS thread.
// Only meaningful while the goroutine is locked to its thread.
func ThreadID() int {
	return int(windows.GetCurrentThreadId())
}
