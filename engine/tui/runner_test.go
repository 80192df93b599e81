package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/roadrush/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frames struct {
	count int
}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newGame(t *testing.T, logic ...engine.LogicFunc[frames]) *engine.Game[frames] {
	t.Helper()
	g := engine.New[frames](engine.WithLogger(slog.New(slog.DiscardHandler)), engine.WithSeed(1))
	g.AddLogic(func(e *engine.Engine, s *frames) { s.count++ })
	for _, fn := range logic {
		g.AddLogic(fn)
	}
	require.NoError(t, g.Start(frames{}))
	return g
}

func cellRune(screen tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := screen.GetContents()
	runes := cells[y*w+x].Runes
	if len(runes) == 0 {
		return ' '
	}
	return runes[0]
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want engine.KeyCode
		ok   bool
	}{
		{"lower rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), engine.KeyW, true},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), engine.KeyD, true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), engine.Key7, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), engine.KeySpace, true},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.KeyLeft, true},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.KeyQ, true},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), engine.KeyQ, true},
		{"ctrl rune c quits", tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), engine.KeyQ, true},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone), engine.KeyUnknown, false},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), engine.KeyUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.ev, engine.KeyQ)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeysStayHeldForHoldTime(t *testing.T) {
	screen := newScreen(t, 80, 24)
	g := newGame(t)
	r := NewRunner(g, screen, Options{HoldTime: 100 * time.Millisecond})
	kb := g.Engine().KeyboardState

	start := time.Now()
	r.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), start)

	require.NoError(t, r.tick(16*time.Millisecond, start.Add(16*time.Millisecond)))
	assert.True(t, kb.Pressed(engine.KeyUp))
	assert.True(t, kb.JustPressed(engine.KeyUp))

	require.NoError(t, r.tick(16*time.Millisecond, start.Add(80*time.Millisecond)))
	assert.True(t, kb.Pressed(engine.KeyUp))
	assert.False(t, kb.JustPressed(engine.KeyUp))

	require.NoError(t, r.tick(16*time.Millisecond, start.Add(120*time.Millisecond)))
	assert.False(t, kb.Pressed(engine.KeyUp))
	assert.True(t, kb.JustReleased(engine.KeyUp))
	assert.Empty(t, r.held)
}

func TestRepeatExtendsHold(t *testing.T) {
	screen := newScreen(t, 80, 24)
	g := newGame(t)
	r := NewRunner(g, screen, Options{HoldTime: 100 * time.Millisecond})

	start := time.Now()
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), start)
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), start.Add(90*time.Millisecond))

	require.NoError(t, r.tick(16*time.Millisecond, start.Add(150*time.Millisecond)))
	assert.True(t, g.Engine().KeyboardState.Pressed(engine.KeyA))
}

func TestResizeUpdatesWindowDimensions(t *testing.T) {
	screen := newScreen(t, 80, 24)
	g := newGame(t)
	r := NewRunner(g, screen, Options{CellSize: engine.NewVec2(10, 20)})

	screen.SetSize(100, 30)
	r.handleEvent(tcell.NewEventResize(100, 30), time.Now())

	assert.Equal(t, engine.NewVec2(1000, 600), g.Engine().WindowDimensions)
}

func TestDrawPlacesSpritesAndTexts(t *testing.T) {
	screen := newScreen(t, 80, 24)
	g := newGame(t)
	r := NewRunner(g, screen, Options{CellSize: engine.NewVec2(10, 20)})
	r.resize()

	car := g.AddSprite("car", engine.RacingCarRed)
	car.Translation = engine.NewVec2(0, 0)
	hidden := g.AddSprite("far", engine.RacingConeStraight)
	hidden.Translation = engine.NewVec2(5000, 0)
	label := g.AddText("label", "Hi")
	label.Translation = engine.NewVec2(-200, 100)

	r.draw()

	// 80x24 cells of 10x20 give an 800x480 world centred on cell (40, 12).
	assert.Equal(t, engine.RacingCarRed.Glyph(), cellRune(screen, 40, 12))
	assert.Equal(t, 'H', cellRune(screen, 19, 7))
	assert.Equal(t, 'i', cellRune(screen, 20, 7))
}

func TestRunReturnsNilOnExit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	g := newGame(t, func(e *engine.Engine, s *frames) {
		if s.count >= 3 {
			e.ShouldExit = true
		}
	})
	r := NewRunner(g, screen, Options{FrameInterval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, r.Run(ctx))
	assert.Equal(t, 3, g.State().count)
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	g := newGame(t)
	r := NewRunner(g, screen, Options{FrameInterval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, r.Run(ctx))
	assert.Positive(t, g.State().count)
}
