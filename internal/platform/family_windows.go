//go:build windows && !winxp

// File: internal/platform/family_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

// Current is the family selected for this build.
const Current = FamilyWindowsModern

// NativeBroadcast reports whether WakeAllConditionVariable-style wake-all exists.
const NativeBroadcast = true
