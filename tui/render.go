package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/RyanBlaney/sonido-ascan/algorithms/common"
	"github.com/RyanBlaney/sonido-ascan/algorithms/spectral"
)

const (
	headerRows  = 2
	maxWaveRows = 14

	emptyPrompt = "Press o to open a data file"
	keyHints    = "o open  e export  m mode  s spectrum  a/d j/l index  z/x c/v amp  r reset  q quit"
)

var (
	selectionColor = tcell.ColorRed
	windowColor    = tcell.NewRGBColor(0, 0, 95)
	traceColor     = tcell.NewRGBColor(80, 160, 255)
	spectrumColor  = tcell.NewRGBColor(255, 170, 60)

	// partial cell heights, in eighths
	eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇'}
)

// layout splits the screen into header, map, waveform panel and status line.
type layout struct {
	width     int
	mapTop    int
	mapRows   int
	waveTop   int
	waveRows  int
	statusRow int
}

func (a *App) layout() layout {
	w, h := a.screen.Size()
	l := layout{width: w, mapTop: headerRows, statusRow: h - 1}

	available := max(h-headerRows-1, 0)
	waveRows := min(available/3, maxWaveRows)
	mapRows := available - waveRows
	if m := a.state.AmplitudeMap(); m != nil && mapRows > cellRows(m.Rows) {
		mapRows = cellRows(m.Rows)
	}

	l.mapRows = mapRows
	l.waveTop = l.mapTop + mapRows
	l.waveRows = available - mapRows
	return l
}

func (a *App) draw() {
	a.screen.Clear()
	l := a.layout()

	a.drawHeader(l)
	if a.state.Loaded() {
		a.drawMap(l)
		a.drawWaveform(l)
	} else {
		drawText(a.screen, 0, l.mapTop, l.width, tcell.StyleDefault, emptyPrompt)
	}
	a.drawStatus(l)

	a.screen.Show()
}

func (a *App) drawHeader(l layout) {
	d := a.state.Dashboard(a.hover, a.hovering)
	line := strings.Join([]string{d.Hover, d.Selected, d.IndexRange, d.AmpRange, d.Analysis}, "  ")
	drawText(a.screen, 0, 0, l.width, tcell.StyleDefault.Bold(true), line)
	drawText(a.screen, 0, 1, l.width, tcell.StyleDefault.Dim(true), d.Summary)
}

// drawMap renders two pixel rows per terminal row: the upper half block takes
// the top pixel as foreground and the bottom pixel as background.
func (a *App) drawMap(l layout) {
	m := a.state.AmplitudeMap()
	if m == nil {
		return
	}
	sel, selected := a.state.Selection()

	for cy := 0; cy < l.mapRows; cy++ {
		top := (a.offsetY + cy) * 2
		if top >= m.Rows {
			break
		}
		bottom := top + 1

		for x := 0; x < l.width; x++ {
			col := a.offsetX + x
			if col >= m.Cols {
				break
			}

			fg := grayColor(m.At(top, col))
			bg := tcell.ColorReset
			if bottom < m.Rows {
				bg = grayColor(m.At(bottom, col))
			}
			if selected && sel.Col == col {
				if sel.Row == top {
					fg = selectionColor
				}
				if sel.Row == bottom {
					bg = selectionColor
				}
			}

			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			a.screen.SetContent(x, l.mapTop+cy, '▀', nil, style)
		}
	}
}

func (a *App) drawWaveform(l layout) {
	if l.waveRows < 1 {
		return
	}
	sel, selected := a.state.Selection()
	if !selected {
		drawText(a.screen, 0, l.waveTop, l.width, tcell.StyleDefault, "Click a pixel to display signal")
		return
	}

	var (
		title  string
		values []float64
		color  tcell.Color
	)
	if a.showSpectrum {
		spec := spectral.MagnitudeSpectrum(a.state.RawWaveform())
		title = fmt.Sprintf("Spectrum for (x=%d, y=%d)  peak bin %d  centroid %.1f  bandwidth %.1f",
			sel.Col, sel.Row, spec.PeakBin, spec.Centroid, spec.Bandwidth)
		values = spec.Normalized()
		color = spectrumColor
	} else {
		title = fmt.Sprintf("Measurements for (x=%d, y=%d)", sel.Col, sel.Row)
		values = a.state.Waveform()
		color = traceColor
	}
	drawText(a.screen, 0, l.waveTop, l.width, tcell.StyleDefault.Bold(true), title)

	plotRows := l.waveRows - 1
	if plotRows < 1 || l.width < 1 {
		return
	}
	baseline := l.waveTop + plotRows

	lowCol, highCol := -1, -1
	if !a.showSpectrum {
		w := a.state.IndexWindow()
		lowCol = sampleColumn(w.Low, len(values), l.width)
		highCol = sampleColumn(w.High, len(values), l.width)
	}

	columns := common.NewInterpolator(common.Linear).InterpolateArray(values, l.width)
	for x, v := range columns {
		bg := tcell.ColorReset
		if x >= lowCol && x <= highCol {
			bg = windowColor
		}
		style := tcell.StyleDefault.Foreground(color).Background(bg)

		level := int(math.Round(common.Clamp(v, 0, 1) * float64(plotRows*8)))
		for i := 0; i < plotRows; i++ {
			r := ' '
			switch {
			case level >= (i+1)*8:
				r = '█'
			case level > i*8:
				r = eighths[level-i*8]
			}
			a.screen.SetContent(x, baseline-i, r, nil, style)
		}
	}
}

func (a *App) drawStatus(l layout) {
	if l.statusRow < 0 {
		return
	}
	switch {
	case a.prompt != nil:
		text := fmt.Sprintf("%s: %s_", a.prompt.label, a.prompt.text())
		drawText(a.screen, 0, l.statusRow, l.width, tcell.StyleDefault.Reverse(true), text)
	case a.status != "":
		style := tcell.StyleDefault
		if a.statusIsErr {
			style = style.Foreground(tcell.ColorRed)
		}
		drawText(a.screen, 0, l.statusRow, l.width, style, a.status)
	default:
		drawText(a.screen, 0, l.statusRow, l.width, tcell.StyleDefault.Dim(true), keyHints)
	}
}

// sampleColumn maps a 1-based sample index onto a column of a plot width
// cells wide.
func sampleColumn(index, samples, width int) int {
	if samples <= 1 || width <= 1 {
		return 0
	}
	pos := float64(index-1) * float64(width-1) / float64(samples-1)
	return common.ClampInt(int(math.Round(pos)), 0, width-1)
}

func grayColor(v uint8) tcell.Color {
	return tcell.NewRGBColor(int32(v), int32(v), int32(v))
}

func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
