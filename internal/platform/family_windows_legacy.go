//go:build windows && winxp

// File: internal/platform/family_windows_legacy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Legacy Windows targets have critical sections and auto-reset events only.

package platform

// Current is the family selected for this build.
const Current = FamilyWindowsLegacy

// NativeBroadcast is false: an auto-reset event releases a single waiter.
const NativeBroadcast = false
