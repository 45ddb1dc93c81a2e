package grid

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrDimensionMismatch = errors.New("array length does not match grid dimensions")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrMissingArray      = errors.New("missing grid array")
	ErrOutOfRange        = errors.New("cell index out of range")
)

// DimensionError reports an array whose length does not follow from the
// grid dimensions.
type DimensionError struct {
	Array string
	Dims  Dimensions
	Got   int
	Want  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s has %d values, want %d for a %s grid", e.Array, e.Got, e.Want, e.Dims)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func outOfRange(d Dimensions, i, j, k int) error {
	return fmt.Errorf("%w: (%d,%d,%d) not in %s", ErrOutOfRange, i, j, k, d)
}
