// Package segdeque provides a generic double-ended sequence built from
// fixed-size memory segments.
//
// A Deque keeps its elements in segments of equal length, reached through an
// indirection index. Growing at either end allocates a new segment instead of
// moving existing elements, so pushes and pops at both ends are amortized
// O(1) and random access stays O(1).
//
// # Quick Start
//
//	d, _ := segdeque.New[int]()
//	_ = d.PushBack(1)
//	_ = d.PushFront(0)
//	for v := range d.Iter() {
//	    fmt.Println(v)
//	}
//
// # Cursors
//
// Cursor is the deque's random access iterator. It satisfies algo.Cursor, so
// the range algorithms in package algo work on deques and slices alike:
//
//	algo.Fill[int](d.Begin(), d.End(), 7)
//	c, _ := d.Insert(d.Begin().Advance(2), 42)
//
// Inserting at either end, erasing, and Clear may reallocate the index or
// release segments. Cursors taken before such a call are invalid afterwards.
// Build with -tags segdeque_debug to turn stale cursor use into a panic.
//
// # Allocation
//
// Segments come from an alloc.Allocator. The default allocates from the Go
// heap; alloc.Budget enforces a memory limit and alloc.Pool recycles
// released segments:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	d, _ := segdeque.New[int](segdeque.WithAllocator[int](alloc.NewBudget[int](rc)))
//
// When an allocation fails the operation returns an error matching
// ErrCapacityExhausted and leaves the deque's elements unchanged.
//
// # Failure Guarantees
//
//   - Push, emplace and bulk insert at either end: strong. On failure the
//     deque holds exactly what it held before the call.
//   - InsertFunc, InsertSlice, InsertRange: strong. Interior inserts build
//     every new element before any existing element moves.
//   - Interior Insert and Emplace: basic. Only allocation can fail, and it
//     happens before any element moves.
//
// # Concurrency
//
// A Deque is not safe for concurrent use. Loggers, metrics collectors and
// allocators may be shared between deques.
package segdeque
