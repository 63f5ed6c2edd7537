package scan

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
)

// AmplitudeMap is the 8-bit gray image derived from a cube, one value per pixel.
type AmplitudeMap struct {
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Pix  []uint8 `json:"-"` // row-major, len Rows*Cols
}

// At returns the intensity of pixel (r, c).
func (m *AmplitudeMap) At(r, c int) uint8 {
	return m.Pix[r*m.Cols+c]
}

// Intensities returns the map as float64 values for statistics.
func (m *AmplitudeMap) Intensities() []float64 {
	out := make([]float64, len(m.Pix))
	for i, v := range m.Pix {
		out[i] = float64(v)
	}
	return out
}

// ComputeAmplitudeMap derives the gray map from a raw cube.
//
// For every pixel the peak-to-peak amplitude over the 1-based inclusive
// index window is mapped linearly from [low*scale, high*scale] onto
// [0, 255], clipped at both ends and rounded. The contrast span is floored
// at Epsilon, so a degenerate contrast window yields a hard threshold
// instead of a division by zero. The result depends only on the arguments.
func ComputeAmplitudeMap(raw *Cube, index IndexWindow, contrast ContrastWindow, scale float64) (*AmplitudeMap, error) {
	if raw == nil {
		return nil, fmt.Errorf("raw cube cannot be nil")
	}
	if !index.validFor(raw.samples) {
		return nil, fmt.Errorf("%w: index window [%d, %d] outside 1..%d", ErrInvalidWindow, index.Low, index.High, raw.samples)
	}

	ampLow, ampHigh := contrast.Bounds(scale)
	span := math.Max(ampHigh-ampLow, Epsilon)

	m := &AmplitudeMap{
		Rows: raw.rows,
		Cols: raw.cols,
		Pix:  make([]uint8, raw.rows*raw.cols),
	}

	lo, hi := index.Low-1, index.Low-1+index.Len()
	for r := 0; r < raw.rows; r++ {
		for c := 0; c < raw.cols; c++ {
			amp := common.PeakToPeak(raw.waveform(r, c)[lo:hi])
			level := common.Clamp((amp-ampLow)/span, 0, 1)
			m.Pix[r*raw.cols+c] = uint8(math.Round(level * 255))
		}
	}

	return m, nil
}
