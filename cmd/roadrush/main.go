// Command roadrush runs the game in a window or, with ROADRUSH_FRONTEND=tui, in the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/plus3/roadrush/config"
	"github.com/plus3/roadrush/engine"
	"github.com/plus3/roadrush/engine/ebiten"
	"github.com/plus3/roadrush/engine/tui"
	"github.com/plus3/roadrush/game"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "roadrush:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	audio := engine.NewAudioManager(engine.AudioOptions{
		SampleRate:   engine.DefaultSampleRate,
		MasterVolume: 1,
		MusicVolume:  cfg.MusicVolume,
		SfxVolume:    cfg.SfxVolume,
		Muted:        cfg.Mute,
	})
	if err := audio.OpenSpeaker(); err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
	}
	defer audio.Close()

	opts := []engine.Option{engine.WithLogger(logger), engine.WithAudio(audio)}
	if cfg.HasSeed {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	g := engine.New[game.GameState](opts...)

	initial := game.Setup(g, game.Options{
		Title:  cfg.Title,
		Width:  float32(cfg.Width),
		Height: float32(cfg.Height),
	})

	switch cfg.Frontend {
	case config.FrontendTUI:
		runner := tui.NewRunner(g, nil, tui.Options{QuitKey: game.QuitKey})
		if err := g.Start(initial); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runner.Run(ctx)

	default:
		runner := ebiten.NewRunner(g, ebiten.Options{DebugUI: cfg.DebugUI})
		if err := g.Start(initial); err != nil {
			return err
		}
		return runner.Run()
	}
}
