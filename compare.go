package segdeque

import (
	"cmp"

	"github.com/hupe1980/segdeque/algo"
)

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b *Deque[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return algo.Equal[T](a.Begin(), a.End(), b.Begin())
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T any](a, b *Deque[T], eq func(T, T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	return algo.EqualFunc[T](a.Begin(), a.End(), b.Begin(), eq)
}

// Compare compares a and b lexicographically and returns -1, 0 or +1.
func Compare[T cmp.Ordered](a, b *Deque[T]) int {
	return algo.LexicographicalCompare[T](a.Begin(), a.End(), b.Begin(), b.End())
}

// Index returns the index of the first occurrence of v in d, or -1.
func Index[T comparable](d *Deque[T], v T) int {
	for i, x := range d.All() {
		if x == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is present in d.
func Contains[T comparable](d *Deque[T], v T) bool {
	return Index(d, v) >= 0
}
