// Command roadrush-soak plays the game headless with scripted input and prints a Markdown report.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/roadrush/config"
)

func main() {
	duration := flag.Duration("duration", 5*time.Minute, "Game time to simulate.")
	seed := flag.Uint64("seed", 1, "Seed for enemy placement and the input script.")
	fps := flag.Int("fps", 60, "Simulated frames per second.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Soaking for %s of game time at %d fps (seed %d)...", *duration, *fps, *seed)
	report, err := Soak(ctx, SoakOptions{
		Duration: *duration,
		FPS:      *fps,
		Seed:     *seed,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("soak: %v", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	if report.PlayerLost {
		log.Fatalf("player sprite disappeared at frame %d", report.PlayerLostFrame)
	}
}
