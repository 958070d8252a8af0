//go:build !windows

// File: internal/platform/family_posix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

// Current is the family selected for this build.
const Current = FamilyPOSIX

// NativeBroadcast reports whether pthread_cond_broadcast-style wake-all exists.
const NativeBroadcast = true
