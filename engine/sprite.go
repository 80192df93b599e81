package engine

import "image/color"

// Sprite is a labelled, positioned instance of a SpritePreset.
type Sprite struct {
	Label       string
	Preset      SpritePreset
	Translation Vec2
	Rotation    float32
	Scale       float32
	Layer       float32
	Collision   bool
}

// NewSprite returns a sprite at the origin with scale 1 and collision off.
func NewSprite(label string, preset SpritePreset) Sprite {
	return Sprite{
		Label:  label,
		Preset: preset,
		Scale:  1,
	}
}

// Radius is the collider radius after scaling.
func (s *Sprite) Radius() float32 {
	return s.Preset.Radius() * s.Scale
}

func (s *Sprite) Size() Vec2 {
	return s.Preset.Size().Scale(s.Scale)
}

func (s *Sprite) Color() color.RGBA {
	return s.Preset.Color()
}

func (s *Sprite) EntityLabel() string { return s.Label }

func (s *Sprite) setLabel(label string) {
	s.Label = label
}

const (
	DefaultFontSize  float32 = 30
	DefaultTextLayer float32 = 900
)

// Text is a labelled string drawn in world space.
type Text struct {
	Label       string
	Value       string
	Translation Vec2
	Rotation    float32
	Scale       float32
	FontSize    float32
	Layer       float32
}

// NewText returns a text at the origin, drawn above sprites at the default font size.
func NewText(label, value string) Text {
	return Text{
		Label:    label,
		Value:    value,
		Scale:    1,
		FontSize: DefaultFontSize,
		Layer:    DefaultTextLayer,
	}
}

func (t *Text) EntityLabel() string { return t.Label }

func (t *Text) setLabel(label string) {
	t.Label = label
}
