// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging setup and debug introspection for the crsync
// runtime.
//
// Provides:
//   - Config loading from YAML or JSON files with defaults and validation
//   - slog logger construction from the log section of Config
//   - DebugProbes, a named probe registry implementing api.Debug
//   - Platform probes (family, broadcast capability, CPU set, symbol table)
//
// Platform probes are build-tag-partitioned.
package control
