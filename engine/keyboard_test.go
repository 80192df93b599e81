package engine_test

import (
	"testing"

	"github.com/plus3/roadrush/engine"
	"github.com/stretchr/testify/assert"
)

func TestKeyboardJustPressedOnlyOnFirstFrame(t *testing.T) {
	kb := engine.NewKeyboardState()

	kb.BeginFrame()
	kb.SetPressed(engine.KeyQ, true)
	assert.True(t, kb.Pressed(engine.KeyQ))
	assert.True(t, kb.JustPressed(engine.KeyQ))

	kb.BeginFrame()
	kb.SetPressed(engine.KeyQ, true)
	assert.True(t, kb.Pressed(engine.KeyQ))
	assert.False(t, kb.JustPressed(engine.KeyQ))
	assert.False(t, kb.JustReleased(engine.KeyQ))

	kb.BeginFrame()
	kb.SetPressed(engine.KeyQ, false)
	assert.False(t, kb.Pressed(engine.KeyQ))
	assert.True(t, kb.JustReleased(engine.KeyQ))

	kb.BeginFrame()
	assert.False(t, kb.JustReleased(engine.KeyQ))
}

func TestKeyboardAnyGroups(t *testing.T) {
	kb := engine.NewKeyboardState()
	kb.SetPressed(engine.KeyW, true)

	assert.True(t, kb.PressedAny(engine.KeyUp, engine.KeyW))
	assert.False(t, kb.PressedAny(engine.KeyDown, engine.KeyS))
	assert.True(t, kb.JustPressedAny(engine.KeyUp, engine.KeyW))
	assert.False(t, kb.PressedAny())
	assert.Equal(t, []engine.KeyCode{engine.KeyW}, kb.PressedKeys())

	kb.ReleaseAll()
	assert.Empty(t, kb.PressedKeys())
}

func TestKeyboardIgnoresUnknownKeys(t *testing.T) {
	kb := engine.NewKeyboardState()
	kb.SetPressed(engine.KeyUnknown, true)
	kb.SetPressed(engine.KeyCode(10_000), true)

	assert.False(t, kb.Pressed(engine.KeyUnknown))
	assert.False(t, kb.Pressed(engine.KeyCode(10_000)))
	assert.Empty(t, kb.PressedKeys())
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "Q", engine.KeyQ.String())
	assert.Equal(t, "7", engine.Key7.String())
	assert.Equal(t, "Escape", engine.KeyEscape.String())
	assert.Equal(t, "Unknown", engine.KeyCode(-3).String())

	key, ok := engine.ParseKey("left")
	assert.True(t, ok)
	assert.Equal(t, engine.KeyLeft, key)

	_, ok = engine.ParseKey("hyper")
	assert.False(t, ok)

	assert.Len(t, engine.AllKeys(), 45)
}
