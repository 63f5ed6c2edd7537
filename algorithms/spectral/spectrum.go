package spectral

import (
	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
	"github.com/RyanBlaney/sonido-ascan/algorithms/windowing"
)

// Spectrum is the one-sided magnitude spectrum of a single A-Scan. Bin k
// corresponds to k / N cycles per sample.
type Spectrum struct {
	Magnitude []float64 `json:"magnitude"`
	Size      int       `json:"size"`     // waveform length N
	PeakBin   int       `json:"peak_bin"` // strongest non-DC bin
	Centroid  float64   `json:"centroid"`  // in bins
	Bandwidth float64   `json:"bandwidth"` // in bins
}

// MagnitudeSpectrum removes the waveform mean, applies a periodic Hann
// window and returns the scaled magnitude of bins 0..N/2.
func MagnitudeSpectrum(waveform []float64) *Spectrum {
	n := len(waveform)
	if n == 0 {
		return &Spectrum{Magnitude: []float64{}}
	}

	mean := common.Mean(waveform)
	centered := make([]float64, n)
	for i, v := range waveform {
		centered[i] = v - mean
	}

	window := windowing.NewHann(n, false)
	tapered, err := window.Apply(centered)
	if err != nil {
		// sizes always match here
		tapered = centered
	}

	magnitude := NewFFT().Magnitude(tapered)
	if gain := window.CoherentGain(); gain > 0 {
		scale := 1.0 / (gain * float64(n))
		for k := range magnitude {
			magnitude[k] *= scale
		}
	}

	centroid := NewSpectralCentroid().Compute(magnitude)
	return &Spectrum{
		Magnitude: magnitude,
		Size:      n,
		PeakBin:   peakBin(magnitude),
		Centroid:  centroid,
		Bandwidth: NewSpectralBandwidth().Compute(magnitude, centroid),
	}
}

// Normalized returns the magnitude scaled so the largest bin is 1.
func (s *Spectrum) Normalized() []float64 {
	return common.NewNormalizer(common.Peak, 0).Normalize(s.Magnitude)
}

// peakBin finds the strongest bin, skipping DC
func peakBin(magnitude []float64) int {
	best := 0
	for k := 1; k < len(magnitude); k++ {
		if best == 0 || magnitude[k] > magnitude[best] {
			best = k
		}
	}
	return best
}
