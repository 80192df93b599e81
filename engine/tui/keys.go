package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/roadrush/engine"
)

var specialKeys = map[tcell.Key]engine.KeyCode{
	tcell.KeyUp:         engine.KeyUp,
	tcell.KeyDown:       engine.KeyDown,
	tcell.KeyLeft:       engine.KeyLeft,
	tcell.KeyRight:      engine.KeyRight,
	tcell.KeyEnter:      engine.KeyEnter,
	tcell.KeyTab:        engine.KeyTab,
	tcell.KeyBackspace:  engine.KeyBackspace,
	tcell.KeyBackspace2: engine.KeyBackspace,
}

// translateKey maps a terminal key event to an engine key.
// Esc and Ctrl-C translate to quit.
func translateKey(ev *tcell.EventKey, quit engine.KeyCode) (engine.KeyCode, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return quit, true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return quit, true
		}
		return runeKey(ev.Rune())
	}
	code, ok := specialKeys[ev.Key()]
	return code, ok
}

func runeKey(r rune) (engine.KeyCode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return engine.KeyA + engine.KeyCode(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return engine.KeyA + engine.KeyCode(r-'A'), true
	case r >= '0' && r <= '9':
		return engine.Key0 + engine.KeyCode(r-'0'), true
	case r == ' ':
		return engine.KeySpace, true
	}
	return engine.KeyUnknown, false
}
