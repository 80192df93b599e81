package engine

import (
	"cmp"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/plus3/roadrush/ecs"
)

// Engine is the per-frame context handed to logic functions.
type Engine struct {
	// ShouldExit ends the game after the current frame when set.
	ShouldExit    bool
	KeyboardState *KeyboardState
	// WindowDimensions is the drawable area in logical pixels.
	WindowDimensions    Vec2
	TimeSinceStartup    time.Duration
	TimeSinceStartupF64 float64
	Delta               time.Duration
	DeltaF32            float32
	FrameNumber         uint64
	Sprites             Registry[Sprite]
	Texts               Registry[Text]
	Audio               Audio
	Rand                *rand.Rand
	Logger              *slog.Logger

	collisionEvents []CollisionEvent
}

func newEngine(storage *ecs.Storage, logger *slog.Logger, seed uint64, audio Audio) *Engine {
	return &Engine{
		KeyboardState: NewKeyboardState(),
		Sprites:       NewRegistry[Sprite](storage),
		Texts:         NewRegistry[Text](storage),
		Audio:         audio,
		Rand:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Logger:        logger,
	}
}

// AddSprite inserts a default sprite of preset under label, replacing any sprite with that label.
func (e *Engine) AddSprite(label string, preset SpritePreset) *Sprite {
	return e.Sprites.Insert(label, NewSprite(label, preset))
}

// AddText inserts a default text under label, replacing any text with that label.
func (e *Engine) AddText(label, value string) *Text {
	return e.Texts.Insert(label, NewText(label, value))
}

// DrainCollisionEvents returns the queued collision events in arrival order and empties the queue.
func (e *Engine) DrainCollisionEvents() []CollisionEvent {
	events := e.collisionEvents
	e.collisionEvents = nil
	return events
}

func (e *Engine) PendingCollisionEvents() int {
	return len(e.collisionEvents)
}

// QueueCollisionEvent appends an event for the logic to drain this frame.
func (e *Engine) QueueCollisionEvent(event CollisionEvent) {
	e.collisionEvents = append(e.collisionEvents, event)
}

// SpritesByLayer returns every sprite ordered by layer, then label.
func (e *Engine) SpritesByLayer() []*Sprite {
	sprites := make([]*Sprite, 0, e.Sprites.Len())
	for _, label := range e.Sprites.Labels() {
		if sprite, ok := e.Sprites.Get(label); ok {
			sprites = append(sprites, sprite)
		}
	}
	slices.SortStableFunc(sprites, func(a, b *Sprite) int {
		return cmp.Compare(a.Layer, b.Layer)
	})
	return sprites
}

// TextsByLayer returns every text ordered by layer, then label.
func (e *Engine) TextsByLayer() []*Text {
	texts := make([]*Text, 0, e.Texts.Len())
	for _, label := range e.Texts.Labels() {
		if text, ok := e.Texts.Get(label); ok {
			texts = append(texts, text)
		}
	}
	slices.SortStableFunc(texts, func(a, b *Text) int {
		return cmp.Compare(a.Layer, b.Layer)
	})
	return texts
}

// advance moves the clock forward by one frame of length delta.
func (e *Engine) advance(delta time.Duration) {
	e.FrameNumber++
	e.Delta = delta
	e.DeltaF32 = float32(delta.Seconds())
	e.TimeSinceStartup += delta
	e.TimeSinceStartupF64 = e.TimeSinceStartup.Seconds()
}
