// Package resource implements a memory budget shared by segment allocators.
//
// A Controller tracks bytes handed out to segment storage and, when configured
// with a hard limit, refuses reservations that would exceed it:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64MB
//	})
//
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides what to give up
//	}
//	defer rc.ReleaseMemory(4096)
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use, so one budget can be
// shared by many deques (each of which is itself single-threaded).
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
