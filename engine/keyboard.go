package engine

import "strings"

// KeyCode identifies a physical key independent of the frontend.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:   "Unknown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
}

func (k KeyCode) String() string {
	if k < 0 || k >= keyCount {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// AllKeys returns every known key code except KeyUnknown.
func AllKeys() []KeyCode {
	keys := make([]KeyCode, 0, keyCount-1)
	for k := KeyA; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey resolves a key name case-insensitively.
func ParseKey(name string) (KeyCode, bool) {
	for k := KeyA; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, true
		}
	}
	return KeyUnknown, false
}

// KeyboardState is the set of held keys for the current frame and the one before it.
// A frontend calls BeginFrame and then SetPressed for each key once per frame.
type KeyboardState struct {
	current  [keyCount]bool
	previous [keyCount]bool
}

func NewKeyboardState() *KeyboardState {
	return &KeyboardState{}
}

// BeginFrame makes the current key set the previous one.
func (ks *KeyboardState) BeginFrame() {
	ks.previous = ks.current
}

func (ks *KeyboardState) SetPressed(key KeyCode, pressed bool) {
	if key <= KeyUnknown || key >= keyCount {
		return
	}
	ks.current[key] = pressed
}

// ReleaseAll marks every key as released for the current frame.
func (ks *KeyboardState) ReleaseAll() {
	ks.current = [keyCount]bool{}
}

func (ks *KeyboardState) Pressed(key KeyCode) bool {
	return key > KeyUnknown && key < keyCount && ks.current[key]
}

func (ks *KeyboardState) PressedAny(keys ...KeyCode) bool {
	for _, key := range keys {
		if ks.Pressed(key) {
			return true
		}
	}
	return false
}

// JustPressed reports whether key is held this frame but was not held the frame before.
func (ks *KeyboardState) JustPressed(key KeyCode) bool {
	return ks.Pressed(key) && !ks.previous[key]
}

func (ks *KeyboardState) JustPressedAny(keys ...KeyCode) bool {
	for _, key := range keys {
		if ks.JustPressed(key) {
			return true
		}
	}
	return false
}

// JustReleased reports whether key was held the frame before and is not held now.
func (ks *KeyboardState) JustReleased(key KeyCode) bool {
	return key > KeyUnknown && key < keyCount && ks.previous[key] && !ks.current[key]
}

// PressedKeys returns the held keys in KeyCode order.
func (ks *KeyboardState) PressedKeys() []KeyCode {
	var keys []KeyCode
	for k := KeyA; k < keyCount; k++ {
		if ks.current[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
