package algo

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// Distance returns the number of steps from first to last. Random access
// cursors answer in O(1); others are walked, which requires MultiPass.
func Distance[T any, C Cursor[T, C]](first, last C) int {
	if first.Capabilities().Has(RandomAccess) {
		return last.Distance(first)
	}
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		n++
	}
	return n
}

// Advance returns c moved n steps. Negative n requires Bidirectional.
func Advance[T any, C Cursor[T, C]](c C, n int) C {
	caps := c.Capabilities()
	switch {
	case caps.Has(RandomAccess):
		return c.Advance(n)
	case n >= 0:
		for ; n > 0; n-- {
			c = c.Next()
		}
		return c
	case caps.Has(Bidirectional):
		for ; n < 0; n++ {
			c = c.Prev()
		}
		return c
	default:
		panic(errors.AssertionFailedf("algo: cannot advance a %s cursor by %d", caps, n))
	}
}

// Copy assigns [first, last) to the range starting at dst, front to back,
// and returns the end of the destination range. The destination may overlap
// the source only if it starts at or before first.
func Copy[T any, S Cursor[T, S], D Cursor[T, D]](first, last S, dst D) D {
	if first.Capabilities().Has(RandomAccess) {
		for n := last.Distance(first); n > 0; n-- {
			dst.SetValue(first.Value())
			first = first.Next()
			dst = dst.Next()
		}
		return dst
	}
	for ; !first.Equal(last); first = first.Next() {
		dst.SetValue(first.Value())
		dst = dst.Next()
	}
	return dst
}

// CopyBackward assigns [first, last) to the range ending at dstLast, back to
// front, and returns the start of the destination range. The destination may
// overlap the source only if it ends at or after last.
func CopyBackward[T any, S Cursor[T, S], D Cursor[T, D]](first, last S, dstLast D) D {
	for !last.Equal(first) {
		last = last.Prev()
		dstLast = dstLast.Prev()
		dstLast.SetValue(last.Value())
	}
	return dstLast
}

// Move is Copy that resets every source cell to the zero value after reading
// it. Cells that are both source and destination end up holding the moved
// value; source cells outside the destination end up zero.
func Move[T any, S Cursor[T, S], D Cursor[T, D]](first, last S, dst D) D {
	var zero T
	for ; !first.Equal(last); first = first.Next() {
		v := first.Value()
		first.SetValue(zero)
		dst.SetValue(v)
		dst = dst.Next()
	}
	return dst
}

// MoveBackward is CopyBackward with the source reset semantics of Move.
func MoveBackward[T any, S Cursor[T, S], D Cursor[T, D]](first, last S, dstLast D) D {
	var zero T
	for !last.Equal(first) {
		last = last.Prev()
		dstLast = dstLast.Prev()
		v := last.Value()
		last.SetValue(zero)
		dstLast.SetValue(v)
	}
	return dstLast
}

// Fill assigns v to every cell in [first, last).
func Fill[T any, C Cursor[T, C]](first, last C, v T) {
	for ; !first.Equal(last); first = first.Next() {
		first.SetValue(v)
	}
}

// FillN assigns v to n cells starting at first and returns the end.
func FillN[T any, C Cursor[T, C]](first C, n int, v T) C {
	for ; n > 0; n-- {
		first.SetValue(v)
		first = first.Next()
	}
	return first
}

// UninitializedCopy copies [first, last) into storage nobody observes yet.
func UninitializedCopy[T any, S Cursor[T, S], D Cursor[T, D]](first, last S, dst D) D {
	return Copy[T](first, last, dst)
}

// UninitializedFill fills storage nobody observes yet.
func UninitializedFill[T any, C Cursor[T, C]](first, last C, v T) {
	Fill[T](first, last, v)
}

// UninitializedGenerate writes gen(0) .. gen(n-1) to the n cells starting at
// dst and returns the end of the written range. If gen fails, every cell
// written so far is reset to the zero value and the error is returned.
func UninitializedGenerate[T any, D Cursor[T, D]](dst D, n int, gen func(i int) (T, error)) (D, error) {
	cur := dst
	for i := 0; i < n; i++ {
		v, err := gen(i)
		if err != nil {
			var zero T
			FillN[T](dst, i, zero)
			return dst, err
		}
		cur.SetValue(v)
		cur = cur.Next()
	}
	return cur, nil
}

// Equal reports whether [first1, last1) equals the range of the same length
// starting at first2.
func Equal[T comparable, A Cursor[T, A], B Cursor[T, B]](first1, last1 A, first2 B) bool {
	return EqualFunc[T](first1, last1, first2, func(a, b T) bool { return a == b })
}

// EqualFunc is Equal with a custom element comparison.
func EqualFunc[T any, A Cursor[T, A], B Cursor[T, B]](first1, last1 A, first2 B, eq func(T, T) bool) bool {
	for ; !first1.Equal(last1); first1 = first1.Next() {
		if !eq(first1.Value(), first2.Value()) {
			return false
		}
		first2 = first2.Next()
	}
	return true
}

// LexicographicalCompare compares [first1, last1) with [first2, last2) and
// returns -1, 0 or +1 like cmp.Compare.
func LexicographicalCompare[T cmp.Ordered, A Cursor[T, A], B Cursor[T, B]](first1, last1 A, first2, last2 B) int {
	for ; !first1.Equal(last1); first1 = first1.Next() {
		if first2.Equal(last2) {
			return 1
		}
		if c := cmp.Compare(first1.Value(), first2.Value()); c != 0 {
			return c
		}
		first2 = first2.Next()
	}
	if first2.Equal(last2) {
		return 0
	}
	return -1
}
