// Package scan holds the A-Scan volume model and the pure derivation
// pipeline that turns a raw waveform cube into the smoothed, normalized
// and amplitude-map products shown by the viewer.
package scan

import (
	"fmt"
)

// Fixed acquisition geometry accepted by the loader.
const (
	Rows     = 74
	Cols     = 245
	Samples  = 625
	FlatRows = Rows * Cols // 18130 A-Scans per file

	// Epsilon is the smallest span used as a divisor anywhere in the pipeline.
	Epsilon = 1e-6
)

// Cube is a (rows, cols, samples) volume of float64 stored row-major, so the
// waveform of pixel (r, c) occupies data[(r*cols+c)*samples : ...+samples].
//
// A Cube is never modified after construction. Derived cubes are always new
// values; nothing in this package writes into a cube it did not allocate.
type Cube struct {
	rows    int
	cols    int
	samples int
	data    []float64
}

// NewCube allocates a zero-filled cube.
func NewCube(rows, cols, samples int) *Cube {
	return &Cube{
		rows:    rows,
		cols:    cols,
		samples: samples,
		data:    make([]float64, rows*cols*samples),
	}
}

// NewCubeFromData wraps data without copying. The caller hands over ownership.
func NewCubeFromData(rows, cols, samples int, data []float64) (*Cube, error) {
	if rows <= 0 || cols <= 0 || samples <= 0 {
		return nil, fmt.Errorf("invalid cube dimensions (%d, %d, %d)", rows, cols, samples)
	}
	if len(data) != rows*cols*samples {
		return nil, &ShapeError{
			Got:  []int{len(data)},
			Want: []int{rows * cols * samples},
		}
	}
	return &Cube{rows: rows, cols: cols, samples: samples, data: data}, nil
}

func (c *Cube) Rows() int    { return c.rows }
func (c *Cube) Cols() int    { return c.cols }
func (c *Cube) Samples() int { return c.samples }

// Dims returns (rows, cols, samples).
func (c *Cube) Dims() (int, int, int) {
	return c.rows, c.cols, c.samples
}

// InBounds reports whether (r, col) addresses a pixel of the spatial grid.
func (c *Cube) InBounds(r, col int) bool {
	return r >= 0 && r < c.rows && col >= 0 && col < c.cols
}

// At returns the value at (r, col, s). It panics on out-of-range indices like a slice would.
func (c *Cube) At(r, col, s int) float64 {
	return c.data[c.offset(r, col)+s]
}

// Waveform returns a copy of the waveform at pixel (r, col).
func (c *Cube) Waveform(r, col int) ([]float64, error) {
	if !c.InBounds(r, col) {
		return nil, fmt.Errorf("%w: (row=%d, col=%d) outside %dx%d", ErrOutOfBounds, r, col, c.rows, c.cols)
	}
	out := make([]float64, c.samples)
	copy(out, c.waveform(r, col))
	return out, nil
}

// waveform returns the backing slice of pixel (r, col); callers must not write to it.
func (c *Cube) waveform(r, col int) []float64 {
	off := c.offset(r, col)
	return c.data[off : off+c.samples : off+c.samples]
}

func (c *Cube) offset(r, col int) int {
	return (r*c.cols + col) * c.samples
}

