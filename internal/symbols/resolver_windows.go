//go:build windows

// File: internal/symbols/resolver_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package symbols

import (
	"golang.org/x/sys/windows"

	"github.com/momentics/crsync/internal/platform"
)

type dllBackend struct {
	primary  *windows.LazyDLL
	fallback *windows.LazyDLL
}

func newBackend() backend {
	return &dllBackend{
		primary:  windows.NewLazySystemDLL("kernel32.dll"),
		fallback: windows.NewLazySystemDLL("kernelbase.dll"),
	}
}

func (b *dllBackend) builtin() bool { return false }

func (b *dllBackend) names() [numEntries]string {
	trylock := "TryAcquireSRWLockExclusive"
	if platform.Current == platform.FamilyWindowsLegacy {
		trylock = "TryEnterCriticalSection"
	}
	return [numEntries]string{
		EntryCreate:  "CreateThread",
		EntryJoin:    "WaitForSingleObjectEx",
		EntryDetach:  "CloseHandle",
		EntryTryLock: trylock,
	}
}

func (b *dllBackend) defaultSymbol(name string) uintptr {
	return lookup(b.primary, name)
}

func (b *dllBackend) fallbackSymbol(name string) uintptr {
	return lookup(b.fallback, name)
}

func lookup(dll *windows.LazyDLL, name string) uintptr {
	if dll.Load() != nil {
		return 0
	}
	proc := dll.NewProc(name)
	if proc.Find() != nil {
		return 0
	}
	return proc.Addr()
}
