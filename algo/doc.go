// Package algo provides range algorithms over abstract cursors.
//
// Every algorithm works purely through the Cursor contract and makes no
// assumption about how the underlying storage is laid out: the same Copy
// moves elements between two slices, between two deques, or from a slice into
// a deque.
//
// # Capabilities
//
// Cursors report what they support through a Capability bit set instead of a
// type hierarchy. Algorithms branch once on it:
//
//	if first.Capabilities().Has(algo.RandomAccess) {
//	    n = last.Distance(first) // O(1)
//	} else {
//	    // walk with Next
//	}
//
// A cursor without MultiPass is a single-pass input cursor: it may be read
// once while stepping forward and must not be copied and replayed.
//
// # Uninitialized Storage
//
// Go memory is always initialized, so "uninitialized" destinations are cells
// holding the zero value that no caller can observe yet. The Uninitialized*
// functions write into such cells; UninitializedGenerate additionally resets
// what it wrote when the generator fails, leaving the destination as it was.
package algo
