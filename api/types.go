// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and DTOs.

package api

// PoolStats is a point-in-time view of a worker pool.
type PoolStats struct {
	Running bool `json:"running" yaml:"running"`
	Workers int  `json:"workers" yaml:"workers"`
	Pending int  `json:"pending" yaml:"pending"`
}
