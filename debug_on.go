//go:build segdeque_debug

package segdeque

// debug enables precondition assertions. Build with -tags segdeque_debug.
const debug = true
