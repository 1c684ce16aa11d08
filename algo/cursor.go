package algo

import "strings"

// Capability describes what a cursor supports beyond single-pass forward reads.
type Capability uint8

const (
	// MultiPass cursors can be copied and each copy traversed independently.
	MultiPass Capability = 1 << iota
	// Bidirectional cursors support Prev.
	Bidirectional
	// RandomAccess cursors support Advance and Distance in O(1).
	RandomAccess

	// Input is the capability set of a single-pass cursor.
	Input Capability = 0
	// Full is the capability set of random access containers.
	Full = MultiPass | Bidirectional | RandomAccess
)

// Has reports whether every capability in flags is present.
func (c Capability) Has(flags Capability) bool {
	return c&flags == flags
}

func (c Capability) String() string {
	if c == Input {
		return "input"
	}
	var parts []string
	if c.Has(MultiPass) {
		parts = append(parts, "multi-pass")
	}
	if c.Has(Bidirectional) {
		parts = append(parts, "bidirectional")
	}
	if c.Has(RandomAccess) {
		parts = append(parts, "random-access")
	}
	return strings.Join(parts, "|")
}

// Cursor is a position in a sequence of T. C is the concrete cursor type, so
// stepping returns the same type without boxing.
//
// Prev requires Bidirectional; Advance and Distance require RandomAccess.
// Calling them on a cursor that does not report the capability is a
// precondition violation.
type Cursor[T any, C any] interface {
	// Value reads the element at the cursor.
	Value() T
	// SetValue overwrites the element at the cursor.
	SetValue(v T)
	// Next returns the cursor one step forward.
	Next() C
	// Prev returns the cursor one step backward.
	Prev() C
	// Advance returns the cursor n steps away; n may be negative.
	Advance(n int) C
	// Distance returns the number of steps from `from` to this cursor.
	Distance(from C) int
	// Equal reports whether both cursors denote the same position.
	Equal(other C) bool
	// Capabilities reports what the cursor supports.
	Capabilities() Capability
}
