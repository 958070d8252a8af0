//go:build unix && cgo

// File: internal/symbols/resolver_cgo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// glibc 2.34 folded libpthread into libc; binaries built there and run on an
// older host only see the pthread symbols after libpthread is loaded.

package symbols

/*
#cgo linux LDFLAGS: -ldl
#define _GNU_SOURCE
#include <dlfcn.h>
#include <stdlib.h>

static void *crsync_dlsym_default(const char *name) {
	return dlsym(RTLD_DEFAULT, name);
}

static void *crsync_dlopen(const char *path) {
	return dlopen(path, RTLD_LAZY | RTLD_GLOBAL);
}

static void *crsync_dlsym(void *handle, const char *name) {
	return dlsym(handle, name);
}
*/
import "C"

import "unsafe"

const fallbackLibrary = "libpthread.so.0"

type dlBackend struct {
	handle unsafe.Pointer
	opened bool
}

func newBackend() backend {
	return &dlBackend{}
}

func (b *dlBackend) builtin() bool { return false }

func (b *dlBackend) names() [numEntries]string {
	return [numEntries]string{
		EntryCreate:  "pthread_create",
		EntryJoin:    "pthread_join",
		EntryDetach:  "pthread_detach",
		EntryTryLock: "pthread_mutex_trylock",
	}
}

func (b *dlBackend) defaultSymbol(name string) uintptr {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return uintptr(C.crsync_dlsym_default(cs))
}

func (b *dlBackend) fallbackSymbol(name string) uintptr {
	if !b.opened {
		b.opened = true
		path := C.CString(fallbackLibrary)
		b.handle = C.crsync_dlopen(path)
		C.free(unsafe.Pointer(path))
	}
	if b.handle == nil {
		return 0
	}
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return uintptr(C.crsync_dlsym(b.handle, cs))
}
