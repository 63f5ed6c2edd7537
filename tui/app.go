// Package tui is the terminal front-end of the viewer. It owns the only
// mutable viewer.State, turns key and mouse input into viewer events and
// renders the amplitude map and the selected waveform with tcell.
package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/RyanBlaney/sonido-ascan/config"
	"github.com/RyanBlaney/sonido-ascan/export"
	"github.com/RyanBlaney/sonido-ascan/ingest"
	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/scan"
	"github.com/RyanBlaney/sonido-ascan/viewer"
)

// Loader reads a data file into a reshaped cube.
type Loader interface {
	DecodeFile(path string) (*ingest.ScanData, error)
	SupportsFile(path string) bool
}

// Exporter writes the amplitude map of a state to disk.
type Exporter interface {
	Export(st viewer.State, path string) error
}

// App is the interactive viewer session.
type App struct {
	screen   tcell.Screen
	cfg      *config.ViewerConfig
	loader   Loader
	exporter Exporter
	logger   logging.Logger

	state viewer.State

	hover    viewer.Pixel
	hovering bool

	// map scroll: first visible column and first visible cell row (two pixel rows each)
	offsetX int
	offsetY int

	showSpectrum bool
	prompt       *prompt

	status      string
	statusIsErr bool
	quit        bool
}

// New creates an App drawing on an initialised screen.
func New(screen tcell.Screen, cfg *config.ViewerConfig, loader Loader, exporter Exporter) *App {
	if cfg == nil {
		cfg = config.DefaultViewerConfig()
	}
	return &App{
		screen:   screen,
		cfg:      cfg,
		loader:   loader,
		exporter: exporter,
		logger: logging.WithFields(logging.Fields{
			"component": "tui",
		}),
	}
}

// State returns the current viewer state.
func (a *App) State() viewer.State {
	return a.state
}

// Run processes events until the user quits or the screen is finalised.
func (a *App) Run() error {
	a.screen.EnableMouse()
	a.screen.Clear()

	for !a.quit {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
	}
	return nil
}

// Open loads a data file. On failure the previous state stays on screen and
// the error is shown in the status line.
func (a *App) Open(path string) {
	logger := a.logger.WithFields(logging.Fields{
		"function": "Open",
		"path":     path,
	})

	if !a.loader.SupportsFile(path) {
		a.setError(fmt.Errorf("not an HDF file: %s", path))
		return
	}

	data, err := a.loader.DecodeFile(path)
	if err != nil {
		logger.Warn("Load failed", logging.Fields{"error": err.Error()})
		a.setError(describeLoadError(err, a.cfg.DatasetName))
		return
	}

	next, err := viewer.Update(a.state, viewer.LoadFile(data.Cube, path))
	if err != nil {
		a.setError(err)
		return
	}
	if mode := a.cfg.Mode(); mode != scan.ModeBasic {
		if withMode, err := viewer.Update(next, viewer.SetMode(mode)); err == nil {
			next = withMode
		}
	}

	a.state = next
	a.hovering = false
	a.offsetX, a.offsetY = 0, 0
	a.setStatus(fmt.Sprintf("Loaded %s", path))
}

// describeLoadError turns loader errors into the messages shown to the user.
func describeLoadError(err error, dataset string) error {
	var shapeErr *scan.ShapeError
	switch {
	case errors.Is(err, ingest.ErrDatasetMissing):
		return fmt.Errorf("dataset '%s' not found", dataset)
	case errors.As(err, &shapeErr):
		return fmt.Errorf("unexpected dataset shape %v", shapeErr.Got)
	default:
		return err
	}
}

// dispatch applies a viewer event to the session state.
func (a *App) dispatch(ev viewer.Event) bool {
	next, err := viewer.Update(a.state, ev)
	if err != nil {
		if errors.Is(err, viewer.ErrNoData) {
			a.setStatus("File ▸ Open… to load data (press o)")
			return false
		}
		a.setError(err)
		return false
	}
	a.state = next
	a.setStatus("")
	return true
}

// Export saves the current map to path.
func (a *App) Export(path string) {
	if err := a.exporter.Export(a.state, path); err != nil {
		if errors.Is(err, export.ErrExportPrecondition) {
			a.setStatus("No image to export.")
			return
		}
		a.setError(err)
		return
	}
	a.setStatus(fmt.Sprintf("Saved %s", path))
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusIsErr = false
}

func (a *App) setError(err error) {
	a.status = "Error: " + err.Error()
	a.statusIsErr = true
}
