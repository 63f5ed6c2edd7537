package scan

import (
	"fmt"
	"strings"
)

// Mode selects which raw cube drives the viewer.
type Mode int

const (
	ModeBasic Mode = iota
	ModeSmoothed
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeSmoothed:
		return "radius 1 average"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeBasic || m == ModeSmoothed
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeSmoothed {
		return ModeBasic
	}
	return ModeSmoothed
}

// ParseMode accepts the display names and the short forms "basic" / "smoothed".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "":
		return ModeBasic, nil
	case "smoothed", "radius 1 average", "average":
		return ModeSmoothed, nil
	default:
		return ModeBasic, fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

// View is the active (raw, normalized) cube pair and its amplitude scale.
type View struct {
	Mode           Mode
	Raw            *Cube
	Normalized     *Cube
	AmplitudeScale float64
}

// pair is a raw cube and its per-pixel normalized twin.
type pair struct {
	raw        *Cube
	normalized *Cube
}

// Volume holds both analysis variants of one loaded file. The smoothed cube
// is computed once here and never again, whatever the index window.
type Volume struct {
	basic    pair
	smoothed pair
}

// NewVolume runs the smoothing and normalization stages for a freshly loaded cube.
func NewVolume(raw *Cube) *Volume {
	smoothed := Smooth(raw)
	return &Volume{
		basic:    pair{raw: raw, normalized: Normalize(raw)},
		smoothed: pair{raw: smoothed, normalized: Normalize(smoothed)},
	}
}

// View selects a variant and computes its amplitude scale from the raw cube.
func (v *Volume) View(mode Mode) View {
	p := v.basic
	if mode == ModeSmoothed {
		p = v.smoothed
	}
	return View{
		Mode:           mode,
		Raw:            p.raw,
		Normalized:     p.normalized,
		AmplitudeScale: AmplitudeScale(p.raw),
	}
}
