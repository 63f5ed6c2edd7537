// Package viewer holds the interaction state of the A-Scan viewer as an
// immutable value and the single Update function that derives the next
// state from an event.
package viewer

import (
	"github.com/RyanBlaney/sonido-ascan/scan"
)

// Pixel is a spatial grid position. X is the column, Y the row, as shown in
// the dashboard labels.
type Pixel struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State is everything the front-end renders. It is treated as a value:
// Update returns a new State and never writes into the one it was given.
// The zero State means "no file loaded".
type State struct {
	source string
	volume *scan.Volume

	mode     scan.Mode
	view     scan.View
	index    scan.IndexWindow
	contrast scan.ContrastWindow

	amplitude *scan.AmplitudeMap

	selected  bool
	selection Pixel
	waveform  []float64

	exportEnabled bool
}

// Loaded reports whether a dataset is present.
func (s State) Loaded() bool { return s.volume != nil }

// Source is the path of the loaded file.
func (s State) Source() string { return s.source }

func (s State) Mode() scan.Mode                     { return s.mode }
func (s State) View() scan.View                     { return s.view }
func (s State) IndexWindow() scan.IndexWindow       { return s.index }
func (s State) ContrastWindow() scan.ContrastWindow { return s.contrast }

// AmplitudeScale of the active view.
func (s State) AmplitudeScale() float64 { return s.view.AmplitudeScale }

// AmplitudeMap is the current gray map, nil before the first load. Callers
// must treat it as read-only.
func (s State) AmplitudeMap() *scan.AmplitudeMap { return s.amplitude }

// Selection returns the selected pixel, if any.
func (s State) Selection() (Pixel, bool) { return s.selection, s.selected }

// Waveform returns a copy of the normalized waveform of the selected pixel
// from the active view, or nil when nothing is selected.
func (s State) Waveform() []float64 {
	if !s.selected {
		return nil
	}
	out := make([]float64, len(s.waveform))
	copy(out, s.waveform)
	return out
}

// RawWaveform returns the selected pixel's waveform from the active raw cube.
func (s State) RawWaveform() []float64 {
	if !s.selected || s.view.Raw == nil {
		return nil
	}
	wf, err := s.view.Raw.Waveform(s.selection.Row, s.selection.Col)
	if err != nil {
		return nil
	}
	return wf
}

// ExportEnabled mirrors the export action availability: off after a load,
// on after the first pixel click.
func (s State) ExportEnabled() bool { return s.exportEnabled && s.amplitude != nil }

// InBounds reports whether p addresses a pixel of the loaded grid.
func (s State) InBounds(p Pixel) bool {
	return s.view.Raw != nil && s.view.Raw.InBounds(p.Row, p.Col)
}
