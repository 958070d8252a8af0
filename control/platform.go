// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Probes describing the native primitive family and resolved entry points.

package control

import (
	"github.com/momentics/crsync/internal/platform"
	"github.com/momentics/crsync/internal/symbols"
)

// RegisterPlatformProbes registers platform.* probes. r may be nil, in
// which case the symbol probe is skipped.
func RegisterPlatformProbes(dp *DebugProbes, r *symbols.Resolver) {
	info := platform.Probe()
	dp.RegisterProbe("platform.family", func() any { return info.Family.String() })
	dp.RegisterProbe("platform.native_broadcast", func() any { return info.NativeBroadcast })
	dp.RegisterProbe("platform.os", func() any { return info.OS + "/" + info.Arch })
	dp.RegisterProbe("platform.cpus", func() any { return usableCPUs() })
	dp.RegisterProbe("platform.cpu_features", func() any { return info.Features })
	if r != nil {
		dp.RegisterProbe("platform.symbols", func() any { return SymbolReport(r) })
	}
}

// SymbolReport maps each required entry point to where it was found.
func SymbolReport(r *symbols.Resolver) map[string]string {
	t := r.Table()
	out := make(map[string]string, len(symbols.Entries))
	for _, e := range symbols.Entries {
		out[e.String()] = t.Get(e).Source.String()
	}
	return out
}
