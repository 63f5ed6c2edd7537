package scan

import (
	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
)

// Normalize rescales every pixel's waveform independently onto [0, 1]:
//
//	out = (v - min) / max(max - min, Epsilon)
//
// A constant waveform therefore maps to all zeros rather than NaN.
func Normalize(raw *Cube) *Cube {
	out := NewCube(raw.rows, raw.cols, raw.samples)
	normalizer := common.NewNormalizer(common.MinMaxNormalization, Epsilon)

	for r := 0; r < raw.rows; r++ {
		for c := 0; c < raw.cols; c++ {
			off := out.offset(r, c)
			normalizer.NormalizeInto(out.data[off:off+out.samples], raw.waveform(r, c))
		}
	}

	return out
}

// AmplitudeScale is the largest per-pixel peak-to-peak amplitude of the cube.
// Contrast fractions are multiplied by it to obtain raw amplitude units.
func AmplitudeScale(raw *Cube) float64 {
	scale := 0.0
	for r := 0; r < raw.rows; r++ {
		for c := 0; c < raw.cols; c++ {
			if amp := common.PeakToPeak(raw.waveform(r, c)); amp > scale {
				scale = amp
			}
		}
	}
	return scale
}
