package alloc

// Compile time check to ensure Heap satisfies the Allocator interface.
var _ Allocator[int] = (*Heap[int])(nil)

// Heap allocates storage with make. The zero value is ready to use.
type Heap[T any] struct {
	counters counters
}

// NewHeap creates a Heap allocator.
func NewHeap[T any]() *Heap[T] {
	return &Heap[T]{}
}

// Allocate implements Allocator.
func (h *Heap[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		h.counters.failed()
		return nil, invalidCount(n)
	}
	h.counters.allocated(n)
	return make([]T, n), nil
}

// Deallocate implements Allocator.
func (h *Heap[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}
	h.counters.deallocated(len(buf))
}

// Stats returns a snapshot of the allocator counters.
func (h *Heap[T]) Stats() Stats {
	return h.counters.snapshot()
}
