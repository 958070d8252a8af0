//go:build !windows && !cgo

// File: internal/symbols/resolver_nocgo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Without cgo nothing is looked up: the Go runtime creates and retires OS
// threads itself. Each entry is named after the Go facility that stands in
// for the native call, and reported with SourceRuntime and a zero Addr.

package symbols

type runtimeBackend struct{}

func newBackend() backend {
	return runtimeBackend{}
}

func (runtimeBackend) builtin() bool                 { return true }
func (runtimeBackend) defaultSymbol(string) uintptr  { return 0 }
func (runtimeBackend) fallbackSymbol(string) uintptr { return 0 }

func (runtimeBackend) names() [numEntries]string {
	return [numEntries]string{
		EntryCreate:  "go statement + runtime.LockOSThread",
		EntryJoin:    "receive on thread done channel",
		EntryDetach:  "drop thread handle",
		EntryTryLock: "sync.Mutex.TryLock",
	}
}
