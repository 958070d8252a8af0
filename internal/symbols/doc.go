// File: internal/symbols/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package symbols resolves the native threading entry points a build depends
// on (thread create, join, detach and mutex try-lock) from the running
// process. On POSIX with cgo the default dlsym namespace is searched first and
// the thread-support library is opened lazily on a miss; on Windows kernel32
// is searched with kernelbase as the fallback. Builds without cgo rely on the
// Go runtime's own thread creation, which is present by construction.
//
// A Resolver is an owned value, built once and eagerly; there is no package
// level table.
package symbols
