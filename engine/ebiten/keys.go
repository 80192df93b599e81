package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roadrush/engine"
)

var keyMap = map[engine.KeyCode]ebiten.Key{
	engine.KeyA: ebiten.KeyA, engine.KeyB: ebiten.KeyB, engine.KeyC: ebiten.KeyC,
	engine.KeyD: ebiten.KeyD, engine.KeyE: ebiten.KeyE, engine.KeyF: ebiten.KeyF,
	engine.KeyG: ebiten.KeyG, engine.KeyH: ebiten.KeyH, engine.KeyI: ebiten.KeyI,
	engine.KeyJ: ebiten.KeyJ, engine.KeyK: ebiten.KeyK, engine.KeyL: ebiten.KeyL,
	engine.KeyM: ebiten.KeyM, engine.KeyN: ebiten.KeyN, engine.KeyO: ebiten.KeyO,
	engine.KeyP: ebiten.KeyP, engine.KeyQ: ebiten.KeyQ, engine.KeyR: ebiten.KeyR,
	engine.KeyS: ebiten.KeyS, engine.KeyT: ebiten.KeyT, engine.KeyU: ebiten.KeyU,
	engine.KeyV: ebiten.KeyV, engine.KeyW: ebiten.KeyW, engine.KeyX: ebiten.KeyX,
	engine.KeyY: ebiten.KeyY, engine.KeyZ: ebiten.KeyZ,

	engine.Key0: ebiten.KeyDigit0, engine.Key1: ebiten.KeyDigit1, engine.Key2: ebiten.KeyDigit2,
	engine.Key3: ebiten.KeyDigit3, engine.Key4: ebiten.KeyDigit4, engine.Key5: ebiten.KeyDigit5,
	engine.Key6: ebiten.KeyDigit6, engine.Key7: ebiten.KeyDigit7, engine.Key8: ebiten.KeyDigit8,
	engine.Key9: ebiten.KeyDigit9,

	engine.KeyUp:        ebiten.KeyArrowUp,
	engine.KeyDown:      ebiten.KeyArrowDown,
	engine.KeyLeft:      ebiten.KeyArrowLeft,
	engine.KeyRight:     ebiten.KeyArrowRight,
	engine.KeySpace:     ebiten.KeySpace,
	engine.KeyEnter:     ebiten.KeyEnter,
	engine.KeyEscape:    ebiten.KeyEscape,
	engine.KeyTab:       ebiten.KeyTab,
	engine.KeyBackspace: ebiten.KeyBackspace,
}

var reverseKeyMap = func() map[ebiten.Key]engine.KeyCode {
	m := make(map[ebiten.Key]engine.KeyCode, len(keyMap))
	for code, key := range keyMap {
		m[key] = code
	}
	return m
}()

// ToEbitenKey maps an engine key to its ebiten key.
func ToEbitenKey(code engine.KeyCode) (ebiten.Key, bool) {
	key, ok := keyMap[code]
	return key, ok
}

// FromEbitenKey maps an ebiten key back to the engine key.
func FromEbitenKey(key ebiten.Key) (engine.KeyCode, bool) {
	code, ok := reverseKeyMap[key]
	return code, ok
}

// applyKeys replaces the keyboard's current key set with pressed.
// Keys the engine does not know are ignored.
func applyKeys(kb *engine.KeyboardState, pressed []ebiten.Key) {
	kb.ReleaseAll()
	for _, key := range pressed {
		if code, ok := reverseKeyMap[key]; ok {
			kb.SetPressed(code, true)
		}
	}
}
