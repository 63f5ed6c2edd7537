package viewer

import (
	"fmt"

	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
)

// Dashboard holds the text of the status labels above the map.
type Dashboard struct {
	Hover      string
	Selected   string
	IndexRange string
	AmpRange   string
	Analysis   string
	Summary    string
}

// HoverLabel formats a hover readout. Hovering never changes the state.
func HoverLabel(p Pixel, ok bool) string {
	if !ok {
		return "Hover: (x=?, y=?)"
	}
	return fmt.Sprintf("Hover: (x=%d, y=%d)", p.Col, p.Row)
}

// Dashboard builds the labels for the current state and hover position.
func (s State) Dashboard(hover Pixel, hovering bool) Dashboard {
	d := Dashboard{
		Hover:      HoverLabel(hover, hovering && s.InBounds(hover)),
		Selected:   "Selected: (x=?, y=?)",
		IndexRange: "Idx 1-?",
		AmpRange:   "Amp 0-?",
		Analysis:   "Analysis: " + s.mode.String(),
	}
	if !s.Loaded() {
		return d
	}

	if p, ok := s.Selection(); ok {
		d.Selected = fmt.Sprintf("Selected: (x=%d, y=%d)", p.Col, p.Row)
	}
	d.IndexRange = s.index.String()
	d.AmpRange = s.contrast.String()

	if s.amplitude != nil {
		levels := s.amplitude.Intensities()
		d.Summary = fmt.Sprintf("mean %.1f  p95 %.0f  scale %.4g",
			common.Mean(levels), common.Percentile(levels, 0.95), s.view.AmplitudeScale)
	}
	return d
}
