package windowing

import (
	"fmt"
	"math"
)

// Hann represents a Hann window function. The spectrum panel tapers each
// A-Scan with it so the front-wall echo does not smear across every bin.
type Hann struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHann creates a new Hann window
func NewHann(size int, symmetric bool) *Hann {
	h := &Hann{
		size:      size,
		symmetric: symmetric,
	}
	h.generate()
	return h
}

// generate creates Hann window coefficients
func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)
	if h.size == 1 {
		h.coefficients[0] = 1.0
		return
	}

	denominator := float64(h.size)
	if h.symmetric {
		denominator = float64(h.size - 1)
	}

	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hann) Apply(signal []float64) ([]float64, error) {
	if len(signal) != h.size {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	windowed := make([]float64, h.size)
	for i := 0; i < h.size; i++ {
		windowed[i] = signal[i] * h.coefficients[i]
	}

	return windowed, nil
}

// CoherentGain is the mean of the coefficients; dividing a windowed
// spectrum by it restores sinusoid amplitudes
func (h *Hann) CoherentGain() float64 {
	if h.size == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range h.coefficients {
		sum += c
	}
	return sum / float64(h.size)
}
