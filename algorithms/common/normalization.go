package common

import (
	"math"
)

// NormalizationType defines normalization method
type NormalizationType int

const (
	MinMaxNormalization NormalizationType = iota
	Peak
)

// DefaultSpanFloor is the smallest divisor used by min-max normalization.
// Flat signals divide by this instead of zero.
const DefaultSpanFloor = 1e-6

// Normalizer provides signal normalization methods
type Normalizer struct {
	method NormalizationType
	floor  float64
}

// NewNormalizer creates a new normalizer. A non-positive floor selects DefaultSpanFloor.
func NewNormalizer(method NormalizationType, floor float64) *Normalizer {
	if floor <= 0 {
		floor = DefaultSpanFloor
	}
	return &Normalizer{
		method: method,
		floor:  floor,
	}
}

// Normalize normalizes signal using the specified method and returns a new slice
func (n *Normalizer) Normalize(signal []float64) []float64 {
	normalized := make([]float64, len(signal))
	n.NormalizeInto(normalized, signal)
	return normalized
}

// NormalizeInto writes the normalized signal into dst, which must be at least len(signal)
func (n *Normalizer) NormalizeInto(dst, signal []float64) {
	if len(signal) == 0 {
		return
	}

	switch n.method {
	case Peak:
		n.peakNormalize(dst, signal)
	default:
		n.minMaxNormalize(dst, signal)
	}
}

// minMaxNormalize maps the signal onto [0, 1] with span = max(max-min, floor)
func (n *Normalizer) minMaxNormalize(dst, signal []float64) {
	min, max := MinMax(signal)
	span := math.Max(max-min, n.floor)

	for i, val := range signal {
		dst[i] = (val - min) / span
	}
}

// peakNormalize divides by the peak absolute value
func (n *Normalizer) peakNormalize(dst, signal []float64) {
	peak := 0.0
	for _, val := range signal {
		abs := math.Abs(val)
		if abs > peak {
			peak = abs
		}
	}

	if peak < n.floor {
		copy(dst, signal)
		return
	}

	for i, val := range signal {
		dst[i] = val / peak
	}
}
