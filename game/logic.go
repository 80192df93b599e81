package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/plus3/roadrush/engine"
)

// Logic runs one frame of the game: exit check, HUD placement, collision
// scoring, player movement, enemy spawning and score reset, in that order.
func Logic(e *engine.Engine, state *GameState) {
	checkExit(e)
	positionHUD(e)
	resolveCollisions(e, state)
	movePlayer(e)
	spawnEnemies(e, state)
	checkReset(e, state)
}

func checkExit(e *engine.Engine) {
	if e.KeyboardState.JustPressed(QuitKey) {
		e.ShouldExit = true
	}
}

func positionHUD(e *engine.Engine) {
	offset := float32(math.Cos(e.TimeSinceStartupF64*hudWobbleSpeed) * hudWobbleAmplitude)
	halfW, halfH := e.WindowDimensions.X/2, e.WindowDimensions.Y/2

	if score, ok := lookupText(e, ScoreLabel); ok {
		score.Translation = engine.NewVec2(halfW-scoreInsetX, halfH-hudInsetY+offset)
	}
	if highScore, ok := lookupText(e, HighScoreLabel); ok {
		highScore.Translation = engine.NewVec2(-halfW+highScoreInsetX, halfH-hudInsetY)
	}
}

func resolveCollisions(e *engine.Engine, state *GameState) {
	for _, event := range e.DrainCollisionEvents() {
		e.Logger.Debug("collision", "event", event.String(), "frame", e.FrameNumber)

		if event.State != engine.CollisionBegin || !event.Pair.OneStartsWith(PlayerLabel) {
			continue
		}

		for _, label := range event.Pair {
			if !strings.HasPrefix(label, PlayerLabel) {
				e.Sprites.Remove(label)
			}
		}

		state.Score++
		if score, ok := lookupText(e, ScoreLabel); ok {
			score.Value = fmt.Sprintf("Score: %d", state.Score)
		}
		if state.Score > state.HighScore {
			state.HighScore = state.Score
			if highScore, ok := lookupText(e, HighScoreLabel); ok {
				highScore.Value = fmt.Sprintf("High Score: %d", state.HighScore)
			}
		}
		e.Audio.PlaySfx(engine.Minimize2, SfxVolume)
	}
}

func movePlayer(e *engine.Engine) {
	player, ok := e.Sprites.Get(PlayerLabel)
	if !ok {
		e.Logger.Warn("sprite missing", "label", PlayerLabel)
		return
	}

	step := PlayerSpeed * e.DeltaF32
	kb := e.KeyboardState
	if kb.PressedAny(upKeys...) {
		player.Translation.Y += step
	}
	if kb.PressedAny(downKeys...) {
		player.Translation.Y -= step
	}
	if kb.PressedAny(leftKeys...) {
		player.Translation.X -= step
	}
	if kb.PressedAny(rightKeys...) {
		player.Translation.X += step
	}
}

func spawnEnemies(e *engine.Engine, state *GameState) {
	if state.SpawnTimer == nil {
		state.SpawnTimer = engine.NewTimer(SpawnInterval, engine.Repeating)
	}

	for range state.SpawnTimer.Tick(e.Delta).TimesFinishedThisTick() {
		label := fmt.Sprintf("%s%d", EnemyPrefix, state.EnemyIndex)
		state.EnemyIndex++

		enemy := e.AddSprite(label, engine.RacingCarYellow)
		enemy.Translation = engine.NewVec2(
			-SpawnHalfWidth+e.Rand.Float32()*2*SpawnHalfWidth,
			-SpawnHalfHeight+e.Rand.Float32()*2*SpawnHalfHeight,
		)
		enemy.Collision = true
		e.Logger.Debug("enemy spawned", "label", label, "at", enemy.Translation.String())
	}
}

func checkReset(e *engine.Engine, state *GameState) {
	if !e.KeyboardState.JustPressed(ResetKey) {
		return
	}
	state.Score = 0
	if score, ok := lookupText(e, ScoreLabel); ok {
		score.Value = "Score: 0"
	}
}

func lookupText(e *engine.Engine, label string) (*engine.Text, bool) {
	text, ok := e.Texts.Get(label)
	if !ok {
		e.Logger.Warn("text missing", "label", label)
	}
	return text, ok
}
