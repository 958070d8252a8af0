//go:build !linux && !windows
// +build !linux,!windows

// control/platform_other.go
// Author: momentics <momentics@gmail.com>

package control

import "runtime"

func usableCPUs() int {
	return runtime.NumCPU()
}
