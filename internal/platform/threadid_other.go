//go:build !linux && !windows

// File: internal/platform/threadid_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

// ThreadID is unavailable here; -1 means unknown.
func ThreadID() int {
	return -1
}
