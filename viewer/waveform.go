package viewer

import (
	"github.com/RyanBlaney/sonido-ascan/scan"
)

// LookupWaveform returns the normalized waveform of pixel p in the given view.
// It fails with scan.ErrOutOfBounds outside the grid.
func LookupWaveform(view scan.View, p Pixel) ([]float64, error) {
	if view.Normalized == nil {
		return nil, ErrNoData
	}
	return view.Normalized.Waveform(p.Row, p.Col)
}
