// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.
// Callers must hold runtime.LockOSThread for the pin to mean anything.

package affinity

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrNotSupported is returned where the host offers no affinity control.
	ErrNotSupported = errors.New("affinity: not supported on this platform")

	// ErrInvalidCPU is returned for a CPU index outside [0, NumCPU).
	ErrInvalidCPU = errors.New("affinity: invalid cpu index")
)

// SetAffinity pins the current OS thread to a given logical CPU.
func SetAffinity(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return fmt.Errorf("%w: %d", ErrInvalidCPU, cpuID)
	}
	return setAffinityPlatform(cpuID)
}
