package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/plus3/roadrush/ecs"
)

// MaxDelta caps a single frame's delta so a stall does not teleport sprites.
const MaxDelta = 250 * time.Millisecond

var (
	// ErrExit is returned by Step once a logic function has set ShouldExit.
	ErrExit = errors.New("engine: exit requested")

	ErrNotStarted     = errors.New("engine: game not started")
	ErrAlreadyStarted = errors.New("engine: game already started")
)

// LogicFunc runs once per frame with the engine context and the game state.
type LogicFunc[S any] func(engine *Engine, state *S)

type Option func(*options)

type options struct {
	logger *slog.Logger
	seed   uint64
	audio  Audio
	window WindowSettings
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSeed seeds Engine.Rand. The default seed is taken from the clock.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

func WithAudio(audio Audio) Option {
	return func(o *options) { o.audio = audio }
}

func WithWindow(settings WindowSettings) Option {
	return func(o *options) { o.window = settings }
}

// Game owns the world storage, the engine context and the frame schedule.
// Each Step runs collision detection, then the logic functions in the order they
// were added, then any extra systems.
type Game[S any] struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	engine    *Engine
	collision *CollisionSystem
	state     *ecs.Singleton[S]
	window    WindowSettings

	logic   []LogicFunc[S]
	systems []namedSystem
	started bool
}

type namedSystem struct {
	system ecs.System
	name   []string
}

// logicSystem adapts a LogicFunc to the scheduler.
type logicSystem[S any] struct {
	State ecs.Singleton[S]

	engine *Engine
	fn     LogicFunc[S]
}

func (l *logicSystem[S]) Execute(frame *ecs.UpdateFrame) {
	if state := l.State.Get(); state != nil {
		l.fn(l.engine, state)
	}
}

func New[S any](opts ...Option) *Game[S] {
	o := options{
		logger: slog.Default(),
		seed:   uint64(time.Now().UnixNano()),
		audio:  NopAudio{},
		window: DefaultWindowSettings(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	engine := newEngine(storage, o.logger, o.seed, o.audio)
	engine.WindowDimensions = o.window.Dimensions()

	return &Game[S]{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		engine:    engine,
		collision: NewCollisionSystem(engine),
		window:    o.window,
	}
}

// WindowSettings replaces the window settings and resets the window dimensions to match.
func (g *Game[S]) WindowSettings(settings WindowSettings) {
	g.window = settings
	g.engine.WindowDimensions = settings.Dimensions()
}

func (g *Game[S]) Window() WindowSettings {
	return g.window
}

// AddLogic appends a logic function. Functions added after Start run from the next frame.
func (g *Game[S]) AddLogic(fn LogicFunc[S]) {
	g.logic = append(g.logic, fn)
	if g.started {
		g.registerLogic(fn)
	}
}

// AddSystem appends an ECS system that runs after every logic function.
func (g *Game[S]) AddSystem(system ecs.System, name ...string) {
	if g.started {
		g.scheduler.Register(system, name...)
		return
	}
	g.systems = append(g.systems, namedSystem{system: system, name: name})
}

func (g *Game[S]) AddSprite(label string, preset SpritePreset) *Sprite {
	return g.engine.AddSprite(label, preset)
}

func (g *Game[S]) AddText(label, value string) *Text {
	return g.engine.AddText(label, value)
}

func (g *Game[S]) Engine() *Engine {
	return g.engine
}

func (g *Game[S]) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game[S]) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

// Start stores initial as the game state and builds the frame schedule.
func (g *Game[S]) Start(initial S) error {
	if g.started {
		return ErrAlreadyStarted
	}
	g.started = true

	g.storage.AddSingleton(initial)
	g.state = ecs.NewSingleton[S](g.storage)

	g.scheduler.Register(g.collision, "collision")
	for _, fn := range g.logic {
		g.registerLogic(fn)
	}
	for _, s := range g.systems {
		g.scheduler.Register(s.system, s.name...)
	}
	g.systems = nil

	g.engine.Logger.Debug("game started",
		"title", g.window.Title,
		"sprites", g.engine.Sprites.Len(),
		"texts", g.engine.Texts.Len(),
		"logic", len(g.logic))
	return nil
}

func (g *Game[S]) registerLogic(fn LogicFunc[S]) {
	g.scheduler.Register(&logicSystem[S]{engine: g.engine, fn: fn}, funcName(fn))
}

// Step runs one frame of length dt, clamped to [0, MaxDelta].
// It returns ErrExit once ShouldExit is set.
func (g *Game[S]) Step(dt time.Duration) error {
	if !g.started {
		return ErrNotStarted
	}
	if g.engine.ShouldExit {
		return ErrExit
	}

	dt = min(max(dt, 0), MaxDelta)
	if n := g.engine.PendingCollisionEvents(); n > 0 {
		g.engine.Logger.Debug("dropping undrained collision events", "count", n)
		g.engine.collisionEvents = nil
	}

	g.engine.advance(dt)
	g.scheduler.Once(dt.Seconds())

	if g.engine.ShouldExit {
		return ErrExit
	}
	return nil
}

// State returns the live game state, or nil before Start.
func (g *Game[S]) State() *S {
	if g.state == nil {
		return nil
	}
	return g.state.Get()
}

func (g *Game[S]) Stats() *ecs.SchedulerStats {
	return g.scheduler.GetStats()
}

// RunFor steps the game at a fixed rate until d has elapsed or the game exits.
// Before each frame, input is called with the engine so a caller can script keys.
func (g *Game[S]) RunFor(d, frame time.Duration, input func(*Engine)) (frames int, err error) {
	if frame <= 0 {
		return 0, fmt.Errorf("frame duration must be positive, got %s", frame)
	}
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		g.engine.KeyboardState.BeginFrame()
		if input != nil {
			input(g.engine)
		}
		if err := g.Step(frame); err != nil {
			return frames, err
		}
		frames++
	}
	return frames, nil
}

func funcName(fn any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
