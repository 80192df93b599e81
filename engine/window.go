package engine

// WindowSettings describes the window a frontend opens for the game.
type WindowSettings struct {
	Title     string
	Width     float32
	Height    float32
	Resizable bool
}

func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		Title:     "roadrush",
		Width:     1280,
		Height:    720,
		Resizable: true,
	}
}

func (w WindowSettings) Dimensions() Vec2 {
	return Vec2{X: w.Width, Y: w.Height}
}
