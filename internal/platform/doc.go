// File: internal/platform/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package platform is the compile-time gate that selects the native
// synchronization family (legacy Windows, modern Windows or POSIX) and
// exposes small host probes: native thread ids and CPU features.
//
// The family is chosen by build constraints only:
//
//	windows && winxp   -> FamilyWindowsLegacy (event objects, no broadcast)
//	windows && !winxp  -> FamilyWindowsModern (SRW locks, condition variables)
//	!windows           -> FamilyPOSIX         (pthread mutex/cond)
package platform
