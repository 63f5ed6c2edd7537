package spectral

import (
	"math"
	"testing"
)

func sine(n int, cycles float64, amplitude, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + amplitude*math.Sin(2*math.Pi*cycles*float64(i)/float64(n))
	}
	return out
}

func TestMagnitudeSpectrumFindsTone(t *testing.T) {
	const n = 625
	spec := MagnitudeSpectrum(sine(n, 40, 2.0, 100.0))

	if len(spec.Magnitude) != n/2+1 {
		t.Fatalf("Expected %d bins, got %d", n/2+1, len(spec.Magnitude))
	}
	if spec.PeakBin != 40 {
		t.Errorf("Expected peak at bin 40, got %d", spec.PeakBin)
	}
	// Hann-windowed, coherent-gain corrected: |X| ~ A/2 at the tone bin
	if got := spec.Magnitude[40]; math.Abs(got-1.0) > 0.05 {
		t.Errorf("Expected tone magnitude ~1.0, got %v", got)
	}
	// the DC offset was removed before the transform
	if spec.Magnitude[0] > 1e-9 {
		t.Errorf("Expected no DC component, got %v", spec.Magnitude[0])
	}
	if math.Abs(spec.Centroid-40) > 1.5 {
		t.Errorf("Expected centroid near bin 40, got %v", spec.Centroid)
	}
}

func TestMagnitudeSpectrumEdgeCases(t *testing.T) {
	empty := MagnitudeSpectrum(nil)
	if len(empty.Magnitude) != 0 {
		t.Errorf("Expected empty spectrum, got %d bins", len(empty.Magnitude))
	}

	flat := MagnitudeSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for k, v := range flat.Magnitude {
		if math.IsNaN(v) || v > 1e-12 {
			t.Errorf("bin %d of flat waveform: %v", k, v)
		}
	}
	for _, v := range flat.Normalized() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Normalized flat spectrum is not finite: %v", v)
		}
	}
}

func TestNormalizedPeakIsOne(t *testing.T) {
	spec := MagnitudeSpectrum(sine(128, 9, 3.0, 0))
	norm := spec.Normalized()
	if got := norm[spec.PeakBin]; math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected normalized peak 1, got %v", got)
	}
}

func TestSpectralCentroid(t *testing.T) {
	sc := NewSpectralCentroid()
	if got := sc.Compute([]float64{0, 0, 4, 0}); got != 2 {
		t.Errorf("Expected centroid 2, got %v", got)
	}
	if got := sc.Compute([]float64{0, 1, 0, 1}); got != 2 {
		t.Errorf("Expected centroid 2, got %v", got)
	}
	if got := sc.Compute([]float64{0, 0}); got != 0 {
		t.Errorf("Expected centroid 0 for silence, got %v", got)
	}
}

func TestSpectralBandwidth(t *testing.T) {
	sb := NewSpectralBandwidth()
	if got := sb.Compute([]float64{0, 0, 4, 0}, 2); got != 0 {
		t.Errorf("Expected zero bandwidth for a single bin, got %v", got)
	}
	if got := sb.Compute([]float64{0, 1, 0, 1}, 2); got != 1 {
		t.Errorf("Expected bandwidth 1, got %v", got)
	}
	if got := sb.Compute(nil, 0); got != 0 {
		t.Errorf("Expected 0 for empty spectrum, got %v", got)
	}
}
