package game

import (
	"time"

	"github.com/plus3/roadrush/engine"
)

const (
	PlayerLabel    = "player"
	ScoreLabel     = "score"
	HighScoreLabel = "high_score"
	EnemyPrefix    = "enemy"
)

const (
	// PlayerSpeed is in world units per second.
	PlayerSpeed   float32 = 100
	SpawnInterval         = 2 * time.Second

	// Enemies spawn uniformly in [-SpawnHalfWidth, SpawnHalfWidth) x [-SpawnHalfHeight, SpawnHalfHeight).
	SpawnHalfWidth  float32 = 550
	SpawnHalfHeight float32 = 325

	hudWobbleSpeed     = 3.0
	hudWobbleAmplitude = 5.0
	scoreInsetX        = 80
	highScoreInsetX    = 110
	hudInsetY          = 30

	MusicVolume float32 = 0.1
	SfxVolume   float32 = 0.2
)

const (
	QuitKey  = engine.KeyQ
	ResetKey = engine.KeyR
)

// Each group moves the player along one direction while any of its keys is held.
var (
	upKeys    = []engine.KeyCode{engine.KeyUp, engine.KeyW}
	downKeys  = []engine.KeyCode{engine.KeyDown, engine.KeyS}
	leftKeys  = []engine.KeyCode{engine.KeyLeft, engine.KeyA}
	rightKeys = []engine.KeyCode{engine.KeyRight, engine.KeyD}
)
