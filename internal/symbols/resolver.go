// File: internal/symbols/resolver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package symbols

import "sync"

// Entry names one required threading entry point.
type Entry int

const (
	EntryCreate Entry = iota
	EntryJoin
	EntryDetach
	EntryTryLock
	numEntries
)

// Entries lists every required entry point in resolution order.
var Entries = [numEntries]Entry{EntryCreate, EntryJoin, EntryDetach, EntryTryLock}

func (e Entry) String() string {
	switch e {
	case EntryCreate:
		return "create"
	case EntryJoin:
		return "join"
	case EntryDetach:
		return "detach"
	case EntryTryLock:
		return "trylock"
	default:
		return "unknown"
	}
}

// Source tells where a symbol was found.
type Source int

const (
	SourceMissing Source = iota
	SourceDefault
	SourceFallback
	SourceRuntime
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFallback:
		return "fallback"
	case SourceRuntime:
		return "runtime"
	default:
		return "missing"
	}
}

// Symbol is one resolved entry point. A zero Addr with SourceMissing is a
// double miss; calling through it is a caller bug.
type Symbol struct {
	Name   string
	Addr   uintptr
	Source Source
}

// Valid reports whether the symbol can be used.
func (s Symbol) Valid() bool {
	return s.Source != SourceMissing
}

// Table caches the required entry points.
type Table [numEntries]Symbol

// Get returns the symbol for e.
func (t Table) Get(e Entry) Symbol {
	if e < 0 || e >= numEntries {
		return Symbol{}
	}
	return t[e]
}

// Ready reports whether every entry point resolved.
func (t Table) Ready() bool {
	return len(t.Missing()) == 0
}

// Missing lists entries that could not be resolved.
func (t Table) Missing() []Entry {
	var out []Entry
	for _, e := range Entries {
		if !t[e].Valid() {
			out = append(out, e)
		}
	}
	return out
}

// backend performs the platform lookups.
type backend interface {
	// builtin is true when the facility is guaranteed at build time.
	builtin() bool
	defaultSymbol(name string) uintptr
	// fallbackSymbol opens the fallback library on first use.
	fallbackSymbol(name string) uintptr
	names() [numEntries]string
}

// Resolver owns a backend and the eagerly resolved Table.
type Resolver struct {
	mu      sync.Mutex
	backend backend
	table   Table
}

// New builds a Resolver for this platform and resolves the required table.
func New() *Resolver {
	return newResolver(newBackend())
}

func newResolver(b backend) *Resolver {
	r := &Resolver{backend: b}
	names := b.names()
	r.mu.Lock()
	for _, e := range Entries {
		r.table[e] = r.resolveLocked(names[e])
	}
	r.mu.Unlock()
	return r
}

// Resolve looks up an arbitrary entry point by name.
func (r *Resolver) Resolve(name string) Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(name)
}

func (r *Resolver) resolveLocked(name string) Symbol {
	if r.backend.builtin() {
		return Symbol{Name: name, Source: SourceRuntime}
	}
	if addr := r.backend.defaultSymbol(name); addr != 0 {
		return Symbol{Name: name, Addr: addr, Source: SourceDefault}
	}
	if addr := r.backend.fallbackSymbol(name); addr != 0 {
		return Symbol{Name: name, Addr: addr, Source: SourceFallback}
	}
	return Symbol{Name: name}
}

// Table returns a copy of the cached entry points.
func (r *Resolver) Table() Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table
}

// Lookup returns the cached symbol for e.
func (r *Resolver) Lookup(e Entry) Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Get(e)
}

// FromTable builds a Resolver over a table probed elsewhere, e.g. at build
// time. Names outside the table resolve as missing.
func FromTable(t Table) *Resolver {
	return newResolver(staticBackend(t))
}

type staticBackend Table

func (b staticBackend) builtin() bool { return false }

func (b staticBackend) defaultSymbol(name string) uintptr {
	for _, sym := range b {
		if sym.Name == name && sym.Valid() {
			if sym.Addr == 0 {
				return 1
			}
			return sym.Addr
		}
	}
	return 0
}

func (b staticBackend) fallbackSymbol(string) uintptr { return 0 }

func (b staticBackend) names() [numEntries]string {
	var out [numEntries]string
	for i, sym := range b {
		out[i] = sym.Name
	}
	return out
}
