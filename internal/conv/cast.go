package conv

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrOverflow is returned when a conversion or arithmetic result does not fit.
var ErrOverflow = errors.New("integer overflow")

// UintptrToInt converts uintptr to int safely.
func UintptrToInt(v uintptr) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, errors.Wrapf(ErrOverflow, "%d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// MulInt multiplies two non-negative ints and reports overflow.
func MulInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, errors.Wrapf(ErrOverflow, "%d * %d has a negative operand", a, b)
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, errors.Wrapf(ErrOverflow, "%d * %d exceeds max int", a, b)
	}
	return a * b, nil
}

// AddInt adds two non-negative ints and reports overflow.
func AddInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, errors.Wrapf(ErrOverflow, "%d + %d has a negative operand", a, b)
	}
	if a > math.MaxInt-b {
		return 0, errors.Wrapf(ErrOverflow, "%d + %d exceeds max int", a, b)
	}
	return a + b, nil
}

// CeilDiv returns ceil(a / b) for a >= 0 and b > 0.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
