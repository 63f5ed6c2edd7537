package spectral

// SpectralCentroid computes the spectral centroid (center of mass) of a
// magnitude spectrum in bin units. A-Scan files carry no sampling rate, so
// the viewer reports bins rather than Hz.
type SpectralCentroid struct{}

// NewSpectralCentroid creates a new spectral centroid calculator
func NewSpectralCentroid() *SpectralCentroid {
	return &SpectralCentroid{}
}

// Compute calculates the spectral centroid of a single magnitude spectrum
func (sc *SpectralCentroid) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	numerator := 0.0
	denominator := 0.0

	for i, mag := range spectrum {
		numerator += float64(i) * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}
