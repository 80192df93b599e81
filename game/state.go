// Package game is the car-dodging arcade game: its state, its per-frame logic
// and the setup that builds the opening scene.
package game

import "github.com/plus3/roadrush/engine"

// GameState persists across frames and is mutated in place by Logic.
type GameState struct {
	HighScore  uint32
	Score      uint32
	EnemyIndex int32
	SpawnTimer *engine.Timer
}

// NewGameState returns a zeroed state with a running spawn timer.
func NewGameState() GameState {
	return GameState{
		SpawnTimer: engine.NewTimer(SpawnInterval, engine.Repeating),
	}
}
