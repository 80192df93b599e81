package game

import "github.com/plus3/roadrush/engine"

const DefaultTitle = "Tutorial"

// Options adjusts the opening scene.
type Options struct {
	// Title overrides DefaultTitle when set.
	Title string
	// Width and Height override the window size when positive.
	Width, Height float32
	// NoMusic skips the background track.
	NoMusic bool
}

// Setup configures the window, starts the music, places the player and the two
// HUD texts, registers Logic and returns the initial state.
func Setup(g *engine.Game[GameState], opts Options) GameState {
	window := g.Window()
	window.Title = DefaultTitle
	if opts.Title != "" {
		window.Title = opts.Title
	}
	if opts.Width > 0 {
		window.Width = opts.Width
	}
	if opts.Height > 0 {
		window.Height = opts.Height
	}
	g.WindowSettings(window)

	if !opts.NoMusic {
		g.Engine().Audio.PlayMusic(engine.Classy8Bit, MusicVolume)
	}

	player := g.AddSprite(PlayerLabel, engine.RacingCarBlue)
	player.Translation = engine.NewVec2(0, 0)
	player.Rotation = engine.SouthWest
	player.Scale = 1
	player.Collision = true

	score := g.AddText(ScoreLabel, "Score: 0")
	score.Translation = engine.NewVec2(520, 320)

	highScore := g.AddText(HighScoreLabel, "High Score: 0")
	highScore.Translation = engine.NewVec2(-520, 320)

	g.AddLogic(Logic)

	return NewGameState()
}
