package algo

// SliceCursor is a random access cursor over a slice.
type SliceCursor[T any] struct {
	s []T
	i int
}

// Compile time check to ensure SliceCursor satisfies the Cursor interface.
var _ Cursor[int, SliceCursor[int]] = SliceCursor[int]{}

// Begin returns a cursor at the first element of s.
func Begin[T any](s []T) SliceCursor[T] {
	return SliceCursor[T]{s: s}
}

// End returns a cursor one past the last element of s.
func End[T any](s []T) SliceCursor[T] {
	return SliceCursor[T]{s: s, i: len(s)}
}

// Range returns the cursor pair spanning s.
func Range[T any](s []T) (SliceCursor[T], SliceCursor[T]) {
	return Begin(s), End(s)
}

// Value implements Cursor.
func (c SliceCursor[T]) Value() T { return c.s[c.i] }

// SetValue implements Cursor.
func (c SliceCursor[T]) SetValue(v T) { c.s[c.i] = v }

// Next implements Cursor.
func (c SliceCursor[T]) Next() SliceCursor[T] {
	c.i++
	return c
}

// Prev implements Cursor.
func (c SliceCursor[T]) Prev() SliceCursor[T] {
	c.i--
	return c
}

// Advance implements Cursor.
func (c SliceCursor[T]) Advance(n int) SliceCursor[T] {
	c.i += n
	return c
}

// Distance implements Cursor.
func (c SliceCursor[T]) Distance(from SliceCursor[T]) int { return c.i - from.i }

// Equal implements Cursor.
func (c SliceCursor[T]) Equal(other SliceCursor[T]) bool { return c.i == other.i }

// Capabilities implements Cursor.
func (c SliceCursor[T]) Capabilities() Capability { return Full }

// Index returns the position of the cursor within its slice.
func (c SliceCursor[T]) Index() int { return c.i }
