// File: internal/platform/family.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Family identifies the native primitive set the build targets.
type Family int

const (
	FamilyPOSIX Family = iota
	FamilyWindowsModern
	FamilyWindowsLegacy
)

func (f Family) String() string {
	switch f {
	case FamilyPOSIX:
		return "posix"
	case FamilyWindowsModern:
		return "windows"
	case FamilyWindowsLegacy:
		return "windows-legacy"
	default:
		return "unknown"
	}
}

// Info is a snapshot of host facts used by diagnostics.
type Info struct {
	Family          Family
	NativeBroadcast bool
	OS              string
	Arch            string
	CPUs            int
	Features        []string
}

// Probe collects Info for the running process.
func Probe() Info {
	return Info{
		Family:          Current,
		NativeBroadcast: NativeBroadcast,
		OS:              runtime.GOOS,
		Arch:            runtime.GOARCH,
		CPUs:            runtime.NumCPU(),
		Features:        cpuFeatures(),
	}
}

func cpuFeatures() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	add(cpu.X86.HasSSE2, "sse2")
	add(cpu.X86.HasSSE3, "sse3")
	add(cpu.X86.HasSSE41, "sse4.1")
	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.X86.HasAVX, "avx")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.ARM64.HasASIMD, "neon")
	add(cpu.ARM64.HasATOMICS, "lse")
	return out
}
