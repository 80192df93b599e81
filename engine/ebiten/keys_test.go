package ebiten

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/roadrush/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryEngineKeyMapsBothWays(t *testing.T) {
	for _, code := range engine.AllKeys() {
		key, ok := ToEbitenKey(code)
		require.True(t, ok, "no ebiten key for %s", code)

		back, ok := FromEbitenKey(key)
		require.True(t, ok)
		assert.Equal(t, code, back)
	}
}

func TestFromEbitenKeyUnknown(t *testing.T) {
	_, ok := FromEbitenKey(ebiten.KeyF12)
	assert.False(t, ok)
}

func TestApplyKeysReplacesPressedSet(t *testing.T) {
	kb := engine.NewKeyboardState()
	kb.SetPressed(engine.KeyQ, true)

	applyKeys(kb, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyF12})

	assert.True(t, kb.Pressed(engine.KeyUp))
	assert.True(t, kb.Pressed(engine.KeyW))
	assert.False(t, kb.Pressed(engine.KeyQ))
	assert.Len(t, kb.PressedKeys(), 2)
}

func TestWorldToScreen(t *testing.T) {
	dims := engine.NewVec2(1280, 720)

	tests := []struct {
		name  string
		world engine.Vec2
		x, y  float64
	}{
		{"origin is the centre", engine.NewVec2(0, 0), 640, 360},
		{"y points up", engine.NewVec2(0, 100), 640, 260},
		{"top right hud", engine.NewVec2(520, 320), 1160, 40},
		{"bottom left corner", engine.NewVec2(-640, -360), 0, 720},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := WorldToScreen(tt.world, dims)
			assert.InDelta(t, tt.x, x, 1e-6)
			assert.InDelta(t, tt.y, y, 1e-6)
		})
	}
}
