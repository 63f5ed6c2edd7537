package viewer

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/scan"
)

// ErrNoData reports an interaction that needs a loaded dataset.
var ErrNoData = errors.New("no dataset loaded")

// EventKind enumerates everything that can change the viewer state.
type EventKind int

const (
	FileLoaded EventKind = iota
	IndexWindowChanged
	ContrastWindowChanged
	ModeChanged
	PixelSelected
)

func (k EventKind) String() string {
	switch k {
	case FileLoaded:
		return "FileLoaded"
	case IndexWindowChanged:
		return "IndexWindowChanged"
	case ContrastWindowChanged:
		return "ContrastWindowChanged"
	case ModeChanged:
		return "ModeChanged"
	case PixelSelected:
		return "PixelSelected"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event carries the payload of one interaction. Only the fields relevant to
// Kind are read.
type Event struct {
	Kind EventKind

	// FileLoaded
	Cube   *scan.Cube
	Source string

	// IndexWindowChanged and ContrastWindowChanged; slider values, validated by Update
	Low  float64
	High float64

	// ModeChanged
	Mode scan.Mode

	// PixelSelected
	Pixel Pixel
}

func LoadFile(cube *scan.Cube, source string) Event {
	return Event{Kind: FileLoaded, Cube: cube, Source: source}
}

func SetIndexWindow(low, high float64) Event {
	return Event{Kind: IndexWindowChanged, Low: low, High: high}
}

func SetContrastWindow(low, high float64) Event {
	return Event{Kind: ContrastWindowChanged, Low: low, High: high}
}

func SetMode(mode scan.Mode) Event {
	return Event{Kind: ModeChanged, Mode: mode}
}

func SelectPixel(row, col int) Event {
	return Event{Kind: PixelSelected, Pixel: Pixel{Row: row, Col: col}}
}

// Update applies ev to st and returns the resulting state.
//
// st is never modified. On error the returned state is st itself, so a failed
// load or a rejected window leaves the previous view fully intact. Every
// accepted change that affects the map recomputes it from scratch.
func Update(st State, ev Event) (State, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "viewer",
		"event":     ev.Kind.String(),
	})

	if ev.Kind == FileLoaded {
		next, err := load(ev)
		if err != nil {
			logger.Error(err, "Load rejected")
			return st, err
		}
		logger.Debug("Dataset installed", logging.Fields{"source": ev.Source})
		return next, nil
	}

	if !st.Loaded() {
		return st, ErrNoData
	}

	next := st
	switch ev.Kind {
	case IndexWindowChanged:
		w, err := scan.NewIndexWindowFor(ev.Low, ev.High, st.view.Raw.Samples())
		if err != nil {
			return st, err
		}
		next.index = w

	case ContrastWindowChanged:
		w, err := scan.NewContrastWindow(ev.Low, ev.High)
		if err != nil {
			return st, err
		}
		next.contrast = w

	case ModeChanged:
		if !ev.Mode.Valid() {
			return st, fmt.Errorf("%w: %d", scan.ErrUnknownMode, int(ev.Mode))
		}
		// contrast fractions are kept and reinterpreted against the new scale
		next.mode = ev.Mode
		next.view = st.volume.View(ev.Mode)
		if next.selected {
			wf, err := LookupWaveform(next.view, next.selection)
			if err != nil {
				return st, err
			}
			next.waveform = wf
		}

	case PixelSelected:
		wf, err := LookupWaveform(next.view, ev.Pixel)
		if errors.Is(err, scan.ErrOutOfBounds) {
			logger.Debug("Ignoring selection outside the grid", logging.Fields{
				"row": ev.Pixel.Row,
				"col": ev.Pixel.Col,
			})
			return st, nil
		}
		if err != nil {
			return st, err
		}
		next.selected = true
		next.selection = ev.Pixel
		next.waveform = wf
		next.exportEnabled = true
		return next, nil

	default:
		return st, fmt.Errorf("unknown event kind %v", ev.Kind)
	}

	if err := next.recompute(); err != nil {
		logger.Error(err, "Amplitude map recomputation failed")
		return st, err
	}
	return next, nil
}

// load builds a complete state for a new cube: both analysis variants, full
// windows, basic mode, no selection.
func load(ev Event) (State, error) {
	if ev.Cube == nil {
		return State{}, fmt.Errorf("%w: event carries no cube", ErrNoData)
	}

	volume := scan.NewVolume(ev.Cube)
	next := State{
		source:   ev.Source,
		volume:   volume,
		mode:     scan.ModeBasic,
		view:     volume.View(scan.ModeBasic),
		index:    scan.FullIndexWindow(ev.Cube.Samples()),
		contrast: scan.FullContrastWindow(),
	}

	if err := next.recompute(); err != nil {
		return State{}, err
	}
	return next, nil
}

// recompute rebuilds the amplitude map from the current view and windows.
func (s *State) recompute() error {
	m, err := scan.ComputeAmplitudeMap(s.view.Raw, s.index, s.contrast, s.view.AmplitudeScale)
	if err != nil {
		return err
	}
	s.amplitude = m
	return nil
}
