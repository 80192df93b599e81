// Package tui runs an engine.Game in a terminal using tcell.
package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/roadrush/engine"
)

const (
	DefaultFrameInterval = 16 * time.Millisecond
	// DefaultHoldTime keeps a key pressed after its last repeat. Terminals only
	// report presses, so a held key shows up as a stream of repeats.
	DefaultHoldTime = 150 * time.Millisecond
)

// DefaultCellSize is the world area one terminal cell covers.
var DefaultCellSize = engine.NewVec2(10, 22)

type Options struct {
	FrameInterval time.Duration
	HoldTime      time.Duration
	CellSize      engine.Vec2
	// QuitKey is reported when Esc or Ctrl-C is pressed. Defaults to KeyEscape.
	QuitKey engine.KeyCode
}

func (o *Options) withDefaults() {
	if o.FrameInterval <= 0 {
		o.FrameInterval = DefaultFrameInterval
	}
	if o.HoldTime <= 0 {
		o.HoldTime = DefaultHoldTime
	}
	if o.CellSize.X <= 0 || o.CellSize.Y <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.QuitKey == engine.KeyUnknown {
		o.QuitKey = engine.KeyEscape
	}
}

// Runner drives a started engine.Game from a terminal screen.
type Runner[S any] struct {
	game   *engine.Game[S]
	screen tcell.Screen
	opts   Options

	held     map[engine.KeyCode]time.Time
	lastTick time.Time
}

// NewRunner wraps game. A nil screen opens the controlling terminal in Run.
func NewRunner[S any](game *engine.Game[S], screen tcell.Screen, opts Options) *Runner[S] {
	opts.withDefaults()
	return &Runner[S]{
		game:   game,
		screen: screen,
		opts:   opts,
		held:   make(map[engine.KeyCode]time.Time),
	}
}

// Run blocks until the game exits or ctx is cancelled.
func (r *Runner[S]) Run(ctx context.Context) error {
	if r.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		r.screen = screen
	}
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer r.screen.Fini()

	r.screen.Clear()
	r.resize()

	ticker := time.NewTicker(r.opts.FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := r.screen.PollEvent()
			// PollEvent returns nil once the screen is finalized.
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	r.lastTick = time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			r.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(r.lastTick)
			r.lastTick = now
			if err := r.tick(dt, now); err != nil {
				if errors.Is(err, engine.ErrExit) {
					return nil
				}
				return err
			}
		}
	}
}

func (r *Runner[S]) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if code, ok := translateKey(ev, r.opts.QuitKey); ok {
			r.held[code] = now
		}
	case *tcell.EventResize:
		r.screen.Sync()
		r.resize()
	}
}

// resize makes the world span the whole terminal.
func (r *Runner[S]) resize() {
	cols, rows := r.screen.Size()
	r.game.Engine().WindowDimensions = engine.NewVec2(
		float32(cols)*r.opts.CellSize.X,
		float32(rows)*r.opts.CellSize.Y,
	)
}

// tick steps the game once with the keys still inside their hold window, then redraws.
func (r *Runner[S]) tick(dt time.Duration, now time.Time) error {
	keyboard := r.game.Engine().KeyboardState
	keyboard.BeginFrame()
	keyboard.ReleaseAll()
	for code, pressedAt := range r.held {
		if now.Sub(pressedAt) >= r.opts.HoldTime {
			delete(r.held, code)
			continue
		}
		keyboard.SetPressed(code, true)
	}

	err := r.game.Step(dt)
	r.draw()
	return err
}

// cell converts a world position to a terminal cell. ok is false off screen.
func (r *Runner[S]) cell(p engine.Vec2) (x, y int, ok bool) {
	cols, rows := r.screen.Size()
	dims := r.game.Engine().WindowDimensions
	x = int(math.Floor(float64((p.X + dims.X/2) / r.opts.CellSize.X)))
	y = int(math.Floor(float64((dims.Y/2 - p.Y) / r.opts.CellSize.Y)))
	return x, y, x >= 0 && y >= 0 && x < cols && y < rows
}

var (
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	emptyStyle = tcell.StyleDefault
)

func (r *Runner[S]) draw() {
	r.screen.Fill(' ', emptyStyle)
	e := r.game.Engine()

	for _, sprite := range e.SpritesByLayer() {
		x, y, ok := r.cell(sprite.Translation)
		if !ok {
			continue
		}
		c := sprite.Color()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		r.screen.SetContent(x, y, sprite.Preset.Glyph(), nil, style)
	}

	for _, t := range e.TextsByLayer() {
		x, y, ok := r.cell(t.Translation)
		if !ok {
			continue
		}
		// Centre the string on its cell.
		start := x - len([]rune(t.Value))/2
		cols, _ := r.screen.Size()
		for i, ch := range []rune(t.Value) {
			if cx := start + i; cx >= 0 && cx < cols {
				r.screen.SetContent(cx, y, ch, nil, textStyle)
			}
		}
	}

	r.screen.Show()
}
