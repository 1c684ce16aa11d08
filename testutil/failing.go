package testutil

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/alloc"
)

// ErrInjected is the error returned by injected failures.
var ErrInjected = errors.New("testutil: injected failure")

// Compile time check to ensure FailingAllocator satisfies the Allocator interface.
var _ alloc.Allocator[int] = (*FailingAllocator[int])(nil)

// FailingAllocator forwards to an upstream allocator until its allowance of
// successful allocations is spent, then fails every call with an error
// matching both ErrInjected and alloc.ErrOutOfMemory.
type FailingAllocator[T any] struct {
	upstream  alloc.Allocator[T]
	remaining atomic.Int64
	failures  atomic.Int64
}

// NewFailingAllocator allows after successful allocations. A nil upstream
// uses alloc.Heap; a negative allowance never fails.
func NewFailingAllocator[T any](upstream alloc.Allocator[T], after int) *FailingAllocator[T] {
	if upstream == nil {
		upstream = alloc.NewHeap[T]()
	}
	f := &FailingAllocator[T]{upstream: upstream}
	f.FailAfter(after)
	return f
}

// FailAfter resets the allowance. A negative allowance never fails.
func (f *FailingAllocator[T]) FailAfter(n int) {
	f.remaining.Store(int64(n))
}

// Allocate implements alloc.Allocator.
func (f *FailingAllocator[T]) Allocate(n int) ([]T, error) {
	if f.remaining.Load() >= 0 && f.remaining.Add(-1) < 0 {
		f.remaining.Store(0)
		f.failures.Add(1)
		return nil, errors.Mark(ErrInjected, alloc.ErrOutOfMemory)
	}
	return f.upstream.Allocate(n)
}

// Deallocate implements alloc.Allocator.
func (f *FailingAllocator[T]) Deallocate(buf []T) {
	f.upstream.Deallocate(buf)
}

// Failures returns the number of injected failures.
func (f *FailingAllocator[T]) Failures() int {
	return int(f.failures.Load())
}

// FailAt returns a generator yielding value(i) that fails with ErrInjected
// at index k.
func FailAt[T any](k int, value func(i int) T) func(i int) (T, error) {
	return func(i int) (T, error) {
		if i == k {
			var zero T
			return zero, ErrInjected
		}
		return value(i), nil
	}
}
