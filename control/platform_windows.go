//go:build windows
// +build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows processor count across all groups for the platform.cpus probe.

package control

import (
	"runtime"

	"golang.org/x/sys/windows"
)

func usableCPUs() int {
	if n := windows.GetActiveProcessorCount(windows.ALL_PROCESSOR_GROUPS); n > 0 {
		return int(n)
	}
	return runtime.NumCPU()
}
