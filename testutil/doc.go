// Package testutil provides testing utilities for segdeque.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random operation traces, a reference deque to compare
// against, a loss/duplicate tracker and allocators that fail on demand.
//
// # Random Traces
//
//	rng := testutil.NewRNG(seed)
//	trace := rng.Trace(1000, testutil.OpPushBack, testutil.OpPopFront)
//
// # Reference Model
//
//	var m testutil.Model[int]
//	m.PushBack(1)
//	want := m.Slice()
//
// # Failure Injection
//
//	a := testutil.NewFailingAllocator[int](nil, 2) // third Allocate fails
//	gen := testutil.FailAt(3, func(i int) int { return i })
package testutil
