package algo

import "github.com/cockroachdb/errors"

// LimitedCursor wraps a cursor and reports a reduced capability set. It is
// used to drive algorithms down their slower paths, for example to treat a
// slice as a single-pass input.
type LimitedCursor[T any, C Cursor[T, C]] struct {
	c    C
	caps Capability
}

// Limit wraps c so that it reports at most caps.
func Limit[T any, C Cursor[T, C]](c C, caps Capability) LimitedCursor[T, C] {
	return LimitedCursor[T, C]{c: c, caps: c.Capabilities() & caps}
}

// Unwrap returns the wrapped cursor.
func (l LimitedCursor[T, C]) Unwrap() C { return l.c }

// Value implements Cursor.
func (l LimitedCursor[T, C]) Value() T { return l.c.Value() }

// SetValue implements Cursor.
func (l LimitedCursor[T, C]) SetValue(v T) { l.c.SetValue(v) }

// Next implements Cursor.
func (l LimitedCursor[T, C]) Next() LimitedCursor[T, C] {
	l.c = l.c.Next()
	return l
}

// Prev implements Cursor.
func (l LimitedCursor[T, C]) Prev() LimitedCursor[T, C] {
	l.require(Bidirectional, "Prev")
	l.c = l.c.Prev()
	return l
}

// Advance implements Cursor.
func (l LimitedCursor[T, C]) Advance(n int) LimitedCursor[T, C] {
	l.require(RandomAccess, "Advance")
	l.c = l.c.Advance(n)
	return l
}

// Distance implements Cursor.
func (l LimitedCursor[T, C]) Distance(from LimitedCursor[T, C]) int {
	l.require(RandomAccess, "Distance")
	return l.c.Distance(from.c)
}

// Equal implements Cursor.
func (l LimitedCursor[T, C]) Equal(other LimitedCursor[T, C]) bool { return l.c.Equal(other.c) }

// Capabilities implements Cursor.
func (l LimitedCursor[T, C]) Capabilities() Capability { return l.caps }

func (l LimitedCursor[T, C]) require(c Capability, op string) {
	if !l.caps.Has(c) {
		panic(errors.AssertionFailedf("algo: %s on a %s cursor", errors.Safe(op), l.caps))
	}
}
