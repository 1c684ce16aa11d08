package testutil

import "github.com/gammazero/deque"

// Model is a reference deque used to check traces against. It is backed by
// a ring buffer, which shares no code with segmented storage.
//
// The zero value is an empty model.
type Model[T any] struct {
	deque.Deque[T]
}

// Slice returns the elements front to back.
func (m *Model[T]) Slice() []T {
	out := make([]T, m.Len())
	for i := range out {
		out[i] = m.At(i)
	}
	return out
}

// Apply performs op and reports whether it changed the model. Pops and
// erases on an empty model are no-ops. value converts the op's value to T.
func (m *Model[T]) Apply(op Op, value func(int) T) bool {
	n := m.Len()
	switch op.Kind {
	case OpPushBack:
		m.PushBack(value(op.Value))
	case OpPushFront:
		m.PushFront(value(op.Value))
	case OpInsert:
		m.Insert(op.Index(n), value(op.Value))
	case OpPopBack:
		if n == 0 {
			return false
		}
		m.PopBack()
	case OpPopFront:
		if n == 0 {
			return false
		}
		m.PopFront()
	case OpErase:
		if n == 0 {
			return false
		}
		m.Remove(op.Index(n))
	default:
		return false
	}
	return true
}
