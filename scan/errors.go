package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is matched by every *ShapeError.
	ErrShape = errors.New("unexpected dataset shape")

	// ErrOutOfBounds reports a pixel coordinate outside the spatial grid.
	ErrOutOfBounds = errors.New("pixel out of bounds")

	// ErrInvalidWindow reports an index or contrast window that cannot be used.
	ErrInvalidWindow = errors.New("invalid window")

	// ErrUnknownMode reports an analysis mode other than basic or smoothed.
	ErrUnknownMode = errors.New("unknown analysis mode")
)

// ShapeError describes a dataset whose dimensions differ from the expected ones.
type ShapeError struct {
	Got  []int
	Want []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected dataset shape %v, want %v", e.Got, e.Want)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}
