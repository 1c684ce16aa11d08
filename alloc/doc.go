// Package alloc provides the allocation service used for deque segments.
//
// An Allocator hands out zeroed storage for a fixed number of elements and
// takes it back once the caller has destroyed every element in it. Go has no
// destructors, so "destroying" an element means resetting its cell to the
// zero value (see Destroy) so that anything it referenced can be collected.
//
// # Implementations
//
//   - Heap: plain Go allocation, never fails.
//   - Budget: charges every block against a resource.Controller and fails
//     with ErrOutOfMemory once the budget is exhausted.
//   - Pool: keeps a bounded free list of released blocks in front of another
//     allocator. Each Pool is an ordinary value; there is no process-wide
//     free list.
//
// All implementations are safe for concurrent use so that one instance can be
// shared by several deques.
package alloc
