// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "github.com/momentics/crsync/api"

var (
	_ api.Locker = (*Mutex)(nil)
	_ api.Waiter = (*Signal)(nil)
)
