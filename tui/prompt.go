package tui

import (
	"github.com/gdamore/tcell/v2"
)

// prompt is a one-line text input shown in the status line.
type prompt struct {
	label    string
	buf      []rune
	onSubmit func(string)
}

func newPrompt(label, initial string, onSubmit func(string)) *prompt {
	return &prompt{label: label, buf: []rune(initial), onSubmit: onSubmit}
}

func (p *prompt) text() string {
	return string(p.buf)
}

// handleKey edits the buffer and reports whether the prompt is finished.
func (p *prompt) handleKey(ev *tcell.EventKey) (done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		if len(p.buf) > 0 {
			p.onSubmit(p.text())
		}
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case tcell.KeyCtrlU:
		p.buf = p.buf[:0]
	case tcell.KeyRune:
		p.buf = append(p.buf, ev.Rune())
	}
	return false
}
