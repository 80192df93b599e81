package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/plus3/roadrush/engine"
	"github.com/plus3/roadrush/game"
)

type SoakOptions struct {
	Duration time.Duration
	FPS      int
	Seed     uint64
	Logger   *slog.Logger
	// ResetEvery presses the reset key at this game-time interval. Zero disables it.
	ResetEvery time.Duration
}

const defaultResetEvery = 45 * time.Second

var steering = [][]engine.KeyCode{
	{engine.KeyUp},
	{engine.KeyDown},
	{engine.KeyLeft},
	{engine.KeyRight},
	{engine.KeyW, engine.KeyD},
	{engine.KeyS, engine.KeyA},
	nil,
}

// script holds a random steering choice for a random number of frames.
type script struct {
	rng       *rand.Rand
	keys      []engine.KeyCode
	remaining int
	fps       int
}

func (s *script) next() []engine.KeyCode {
	if s.remaining <= 0 {
		s.keys = steering[s.rng.IntN(len(steering))]
		s.remaining = s.fps/4 + s.rng.IntN(s.fps)
	}
	s.remaining--
	return s.keys
}

// Soak runs the game headless for opts.Duration of game time.
func Soak(ctx context.Context, opts SoakOptions) (*Report, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.ResetEvery == 0 {
		opts.ResetEvery = defaultResetEvery
	}

	audio := engine.NewAudioManager(engine.DefaultAudioOptions())
	defer audio.Close()

	g := engine.New[game.GameState](
		engine.WithLogger(opts.Logger),
		engine.WithSeed(opts.Seed),
		engine.WithAudio(audio),
	)
	if err := g.Start(game.Setup(g, game.Options{})); err != nil {
		return nil, err
	}

	frame := time.Second / time.Duration(opts.FPS)
	total := int(opts.Duration / frame)
	resetFrames := int(opts.ResetEvery / frame)
	input := &script{rng: rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5eed)), fps: opts.FPS}
	e := g.Engine()

	report := &Report{
		Duration: opts.Duration,
		FPS:      opts.FPS,
		Seed:     opts.Seed,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

Loop:
	for range total {
		select {
		case <-ctx.Done():
			report.Interrupted = true
			break Loop
		default:
		}

		e.KeyboardState.BeginFrame()
		e.KeyboardState.ReleaseAll()
		for _, key := range input.next() {
			e.KeyboardState.SetPressed(key, true)
		}
		if resetFrames > 0 && report.Frames > 0 && report.Frames%resetFrames == 0 {
			e.KeyboardState.SetPressed(game.ResetKey, true)
			report.Resets++
		}

		stepStart := time.Now()
		err := g.Step(frame)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(stepStart))
		if err != nil && !errors.Is(err, engine.ErrExit) {
			return nil, err
		}
		audio.Pump(frame)
		report.Frames++

		if _, ok := e.Sprites.Get(game.PlayerLabel); !ok && !report.PlayerLost {
			report.PlayerLost = true
			report.PlayerLostFrame = e.FrameNumber
		}
		if errors.Is(err, engine.ErrExit) {
			break
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	state := g.State()
	report.Score = state.Score
	report.HighScore = state.HighScore
	report.SfxPlayed = audio.SfxPlayed()
	for _, label := range e.Sprites.Labels() {
		if strings.HasPrefix(label, game.EnemyPrefix) {
			report.Enemies++
		}
	}
	report.Scheduler = g.Stats()
	return report, nil
}
