// File: internal/platform/platform_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "posix", FamilyPOSIX.String())
	assert.Equal(t, "windows", FamilyWindowsModern.String())
	assert.Equal(t, "windows-legacy", FamilyWindowsLegacy.String())
	assert.Equal(t, "unknown", Family(42).String())
}

func TestProbeMatchesBuild(t *testing.T) {
	info := Probe()
	assert.Equal(t, Current, info.Family)
	assert.Equal(t, NativeBroadcast, info.NativeBroadcast)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.NumCPU(), info.CPUs)
	if runtime.GOOS != "windows" {
		assert.Equal(t, FamilyPOSIX, info.Family)
		assert.True(t, info.NativeBroadcast)
	}
}

func TestThreadIDStableWhileLocked(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := ThreadID()
	if runtime.GOOS == "linux" || runtime.GOOS == "windows" {
		assert.Greater(t, id, 0)
	}
	assert.Equal(t, id, ThreadID())
}
