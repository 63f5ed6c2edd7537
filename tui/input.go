package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
	"github.com/RyanBlaney/sonido-ascan/export"
	"github.com/RyanBlaney/sonido-ascan/scan"
	"github.com/RyanBlaney/sonido-ascan/viewer"
)

// HandleEvent routes one terminal event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.clampScroll()
	case *tcell.EventKey:
		if a.prompt != nil {
			if a.prompt.handleKey(ev) {
				a.prompt = nil
			}
			return
		}
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.nudgeSelection(ev.Key())
			return
		}
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		a.scroll(-a.scrollStep(), 0)
		return
	case tcell.KeyRight:
		a.scroll(a.scrollStep(), 0)
		return
	case tcell.KeyUp:
		a.scroll(0, -1)
		return
	case tcell.KeyDown:
		a.scroll(0, 1)
		return
	case tcell.KeyRune:
	default:
		return
	}

	step := a.cfg.IndexStep
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case 'o':
		a.prompt = newPrompt("Open", a.state.Source(), a.Open)
	case 'e':
		a.beginExport()
	case 'm':
		a.dispatch(viewer.SetMode(a.state.Mode().Toggle()))
	case 's':
		a.showSpectrum = !a.showSpectrum
	case 'a':
		a.moveIndex(-step, 0)
	case 'd':
		a.moveIndex(step, 0)
	case 'j':
		a.moveIndex(0, -step)
	case 'l':
		a.moveIndex(0, step)
	case 'z':
		a.moveContrast(-a.cfg.ContrastStep, 0)
	case 'x':
		a.moveContrast(a.cfg.ContrastStep, 0)
	case 'c':
		a.moveContrast(0, -a.cfg.ContrastStep)
	case 'v':
		a.moveContrast(0, a.cfg.ContrastStep)
	case 'r':
		a.resetWindows()
	}
}

// moveIndex shifts the index window ends, keeping low <= high and both
// inside [1, samples].
func (a *App) moveIndex(dLow, dHigh int) {
	if !a.state.Loaded() {
		a.dispatch(viewer.SetIndexWindow(1, 1))
		return
	}
	w := a.state.IndexWindow()
	samples := a.state.View().Raw.Samples()

	low, high := w.Low+dLow, w.High+dHigh
	if dLow != 0 {
		low = common.ClampInt(low, 1, high)
	}
	if dHigh != 0 {
		high = common.ClampInt(high, low, samples)
	}
	if low == w.Low && high == w.High {
		return
	}
	a.dispatch(viewer.SetIndexWindow(float64(low), float64(high)))
}

func (a *App) moveContrast(dLow, dHigh float64) {
	if !a.state.Loaded() {
		a.dispatch(viewer.SetContrastWindow(0, 1))
		return
	}
	w := a.state.ContrastWindow()

	low, high := w.LowFrac+dLow, w.HighFrac+dHigh
	if dLow != 0 {
		low = common.Clamp(low, 0, high)
	}
	if dHigh != 0 {
		high = common.Clamp(high, low, 1)
	}
	if low == w.LowFrac && high == w.HighFrac {
		return
	}
	a.dispatch(viewer.SetContrastWindow(low, high))
}

func (a *App) resetWindows() {
	if !a.state.Loaded() {
		a.dispatch(viewer.SetIndexWindow(1, 1))
		return
	}
	full := scan.FullIndexWindow(a.state.View().Raw.Samples())
	if !a.dispatch(viewer.SetIndexWindow(float64(full.Low), float64(full.High))) {
		return
	}
	a.dispatch(viewer.SetContrastWindow(0, 1))
}

func (a *App) beginExport() {
	if !a.state.ExportEnabled() {
		if a.state.AmplitudeMap() == nil {
			a.setStatus("No image to export.")
		} else {
			a.setStatus("Select a pixel to enable export")
		}
		return
	}
	a.prompt = newPrompt("Export", export.DefaultFileName(a.state), a.Export)
}

// nudgeSelection moves the selected pixel by one in the arrow's direction.
// It reaches the odd rows that share a terminal cell with the row above.
func (a *App) nudgeSelection(key tcell.Key) {
	p, ok := a.state.Selection()
	if !ok {
		return
	}
	switch key {
	case tcell.KeyLeft:
		p.Col--
	case tcell.KeyRight:
		p.Col++
	case tcell.KeyUp:
		p.Row--
	case tcell.KeyDown:
		p.Row++
	}
	a.dispatch(viewer.SelectPixel(p.Row, p.Col))
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p, ok := a.pixelAt(x, y)
	a.hover, a.hovering = p, ok

	if ev.Buttons()&tcell.Button1 == 0 || !ok {
		return
	}
	if sel, selected := a.state.Selection(); selected && sel == p {
		return
	}
	a.dispatch(viewer.SelectPixel(p.Row, p.Col))
}

// pixelAt maps a screen cell to the map pixel drawn in its upper half.
func (a *App) pixelAt(x, y int) (viewer.Pixel, bool) {
	m := a.state.AmplitudeMap()
	if m == nil {
		return viewer.Pixel{}, false
	}
	l := a.layout()
	if y < l.mapTop || y >= l.mapTop+l.mapRows || x < 0 || x >= l.width {
		return viewer.Pixel{}, false
	}
	p := viewer.Pixel{
		Row: (a.offsetY + y - l.mapTop) * 2,
		Col: a.offsetX + x,
	}
	return p, a.state.InBounds(p)
}

func (a *App) scrollStep() int {
	w, _ := a.screen.Size()
	if step := w / 4; step > 1 {
		return step
	}
	return 1
}

func (a *App) scroll(dx, dy int) {
	a.offsetX += dx
	a.offsetY += dy
	a.clampScroll()
}

func (a *App) clampScroll() {
	m := a.state.AmplitudeMap()
	if m == nil {
		a.offsetX, a.offsetY = 0, 0
		return
	}
	l := a.layout()
	a.offsetX = common.ClampInt(a.offsetX, 0, max(m.Cols-l.width, 0))
	a.offsetY = common.ClampInt(a.offsetY, 0, max(cellRows(m.Rows)-l.mapRows, 0))
}

// cellRows is the number of terminal rows needed for rows pixel rows.
func cellRows(rows int) int {
	return (rows + 1) / 2
}
