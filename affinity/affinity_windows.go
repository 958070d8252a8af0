//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
)

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	if cpuID >= 64 {
		return fmt.Errorf("%w: %d exceeds a single processor group", ErrInvalidCPU, cpuID)
	}
	mask := uintptr(1) << uint(cpuID)
	old, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask failed: %v", err)
	}
	return nil
}
