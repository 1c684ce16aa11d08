package segdeque

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfRange is returned by bounds-checked accessors.
	ErrOutOfRange = errors.New("segdeque: index out of range")

	// ErrLength is returned when a request would exceed MaxLen. It is
	// reported before any storage is allocated.
	ErrLength = errors.New("segdeque: length exceeds maximum")

	// ErrCapacityExhausted marks failures to obtain segment storage. The
	// allocator's own error stays reachable with errors.Is / errors.As.
	ErrCapacityExhausted = errors.New("segdeque: capacity exhausted")

	// ErrInvalidCursor marks cursors that are stale, belong to another
	// deque or lie outside [Begin(), End()].
	ErrInvalidCursor = errors.New("segdeque: invalid cursor")

	// ErrInvalidOption is returned when options cannot be applied.
	ErrInvalidOption = errors.New("segdeque: invalid option")
)

// IndexError reports an out-of-range index.
//
// errors.Is(err, ErrOutOfRange) holds for every IndexError.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("segdeque: index %d out of range with length %d", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrOutOfRange }

// LengthError reports a request that would make the deque longer than its
// maximum length.
//
// errors.Is(err, ErrLength) holds for every LengthError.
type LengthError struct {
	Len int // length before the request
	Add int // elements requested
	Max int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("segdeque: cannot add %d elements to length %d (max %d)", e.Add, e.Len, e.Max)
}

func (e *LengthError) Unwrap() error { return ErrLength }

// capacityError wraps an allocator failure with operation context and marks
// it as ErrCapacityExhausted.
func capacityError(err error, op string, segments int) error {
	return errors.Mark(
		errors.Wrapf(err, "%s: allocate %d segments", errors.Safe(op), segments),
		ErrCapacityExhausted,
	)
}

// constructError wraps an element constructor failure.
func constructError(err error, op string) error {
	return errors.Wrapf(err, "%s: construct element", errors.Safe(op))
}
