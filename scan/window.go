package scan

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
)

// IndexWindow is an inclusive, 1-based range of sample indices.
type IndexWindow struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// FullIndexWindow covers every sample of a waveform of the given length.
func FullIndexWindow(samples int) IndexWindow {
	return IndexWindow{Low: 1, High: samples}
}

// NewIndexWindow validates slider input against the fixed sample count.
func NewIndexWindow(low, high float64) (IndexWindow, error) {
	return NewIndexWindowFor(low, high, Samples)
}

// NewIndexWindowFor turns possibly fractional slider values into an integer
// window over [1, samples]. Values are rounded to the nearest index and
// clamped into range; NaN, infinities and low > high are rejected.
func NewIndexWindowFor(low, high float64, samples int) (IndexWindow, error) {
	if samples < 1 {
		return IndexWindow{}, fmt.Errorf("%w: no samples", ErrInvalidWindow)
	}
	if !common.IsFinite(low) || !common.IsFinite(high) {
		return IndexWindow{}, fmt.Errorf("%w: index bounds must be finite, got (%v, %v)", ErrInvalidWindow, low, high)
	}

	// clamp before converting; out-of-range floats have no defined int value
	lo := int(common.Clamp(math.Round(low), 1, float64(samples)))
	hi := int(common.Clamp(math.Round(high), 1, float64(samples)))
	if lo > hi {
		return IndexWindow{}, fmt.Errorf("%w: index low %d above high %d", ErrInvalidWindow, lo, hi)
	}

	return IndexWindow{Low: lo, High: hi}, nil
}

// Len is the number of samples inside the window.
func (w IndexWindow) Len() int {
	return w.High - w.Low + 1
}

// validFor reports whether the window addresses existing samples.
func (w IndexWindow) validFor(samples int) bool {
	return w.Low >= 1 && w.Low <= w.High && w.High <= samples
}

func (w IndexWindow) String() string {
	return fmt.Sprintf("Idx %d-%d", w.Low, w.High)
}

// ContrastWindow is a pair of fractions of the active amplitude scale.
type ContrastWindow struct {
	LowFrac  float64 `json:"low_frac"`
	HighFrac float64 `json:"high_frac"`
}

// FullContrastWindow maps the whole amplitude scale onto the gray range.
func FullContrastWindow() ContrastWindow {
	return ContrastWindow{LowFrac: 0.0, HighFrac: 1.0}
}

// NewContrastWindow clamps both fractions into [0, 1] and rejects NaN,
// infinities and low > high.
func NewContrastWindow(low, high float64) (ContrastWindow, error) {
	if !common.IsFinite(low) || !common.IsFinite(high) {
		return ContrastWindow{}, fmt.Errorf("%w: contrast bounds must be finite, got (%v, %v)", ErrInvalidWindow, low, high)
	}

	lo := common.Clamp(low, 0, 1)
	hi := common.Clamp(high, 0, 1)
	if lo > hi {
		return ContrastWindow{}, fmt.Errorf("%w: contrast low %.3f above high %.3f", ErrInvalidWindow, lo, hi)
	}

	return ContrastWindow{LowFrac: lo, HighFrac: hi}, nil
}

// Bounds converts the fractions to raw amplitude units.
func (w ContrastWindow) Bounds(scale float64) (low, high float64) {
	return w.LowFrac * scale, w.HighFrac * scale
}

func (w ContrastWindow) String() string {
	return fmt.Sprintf("Amp %.2f-%.2f", w.LowFrac, w.HighFrac)
}
