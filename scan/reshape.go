package scan

import (
	"slices"
)

// FlatShape is the (A-Scans, samples) shape of the dataset stored on disk.
var FlatShape = []int{FlatRows, Samples}

// CheckFlatShape validates the on-disk dataset dims before any data is read.
func CheckFlatShape(dims []int) error {
	if !slices.Equal(dims, FlatShape) {
		return &ShapeError{Got: slices.Clone(dims), Want: slices.Clone(FlatShape)}
	}
	return nil
}

// Reshape turns a flat (18130, 625) dataset into the (74, 245, 625) cube.
//
// Flat row i becomes pixel (i / 245, i % 245) with its samples unchanged. The
// two layouts share the same row-major memory order, so the cube adopts flat
// as its backing array; the caller must not modify flat afterwards.
func Reshape(flat []float64, dims []int) (*Cube, error) {
	if err := CheckFlatShape(dims); err != nil {
		return nil, err
	}
	if len(flat) != FlatRows*Samples {
		return nil, &ShapeError{Got: []int{len(flat)}, Want: []int{FlatRows * Samples}}
	}
	return NewCubeFromData(Rows, Cols, Samples, flat)
}
