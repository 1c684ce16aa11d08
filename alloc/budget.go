package alloc

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/internal/conv"
	"github.com/hupe1980/segdeque/resource"
)

// Compile time check to ensure Budget satisfies the Allocator interface.
var _ Allocator[int] = (*Budget[int])(nil)

// Budget allocates storage charged against a resource.Controller.
//
// Every block reserves len(block) * sizeof(T) bytes. When the controller
// refuses the reservation Allocate fails with an error matching both
// ErrOutOfMemory and resource.ErrMemoryLimitExceeded.
type Budget[T any] struct {
	rc       *resource.Controller
	elemSize int
	counters counters
}

// NewBudget creates a Budget allocator. A nil controller tracks nothing and
// never refuses.
func NewBudget[T any](rc *resource.Controller) *Budget[T] {
	var zero T
	size, err := conv.UintptrToInt(unsafe.Sizeof(zero))
	if err != nil || size == 0 {
		size = 1
	}
	return &Budget[T]{rc: rc, elemSize: size}
}

// Allocate implements Allocator.
func (b *Budget[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		b.counters.failed()
		return nil, invalidCount(n)
	}

	bytes, err := conv.MulInt(n, b.elemSize)
	if err != nil {
		b.counters.failed()
		return nil, errors.Mark(errors.Wrapf(err, "size %d elements", n), ErrOutOfMemory)
	}

	if err := b.rc.AcquireMemory(int64(bytes)); err != nil {
		b.counters.failed()
		return nil, errors.Mark(errors.Wrapf(err, "allocate %d elements", n), ErrOutOfMemory)
	}

	b.counters.allocated(n)
	return make([]T, n), nil
}

// Deallocate implements Allocator.
func (b *Budget[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}
	b.rc.ReleaseMemory(int64(len(buf) * b.elemSize))
	b.counters.deallocated(len(buf))
}

// Stats returns a snapshot of the allocator counters.
func (b *Budget[T]) Stats() Stats {
	return b.counters.snapshot()
}
