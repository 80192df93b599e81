package engine

import "image/color"

// SpritePreset selects one of the built-in sprite looks. A preset fixes the drawn
// size, colour and terminal glyph of a sprite as well as its collider radius.
type SpritePreset int

const (
	RacingBarrelBlue SpritePreset = iota
	RacingBarrelRed
	RacingBarrierRed
	RacingBarrierWhite
	RacingCarBlack
	RacingCarBlue
	RacingCarGreen
	RacingCarRed
	RacingCarYellow
	RacingConeStraight

	spritePresetCount
)

type presetInfo struct {
	name   string
	size   Vec2
	radius float32
	color  color.RGBA
	glyph  rune
}

var spritePresets = [spritePresetCount]presetInfo{
	RacingBarrelBlue:   {"RacingBarrelBlue", Vec2{28, 28}, 14, color.RGBA{60, 110, 220, 255}, 'o'},
	RacingBarrelRed:    {"RacingBarrelRed", Vec2{28, 28}, 14, color.RGBA{220, 60, 60, 255}, 'o'},
	RacingBarrierRed:   {"RacingBarrierRed", Vec2{100, 24}, 24, color.RGBA{200, 40, 40, 255}, '='},
	RacingBarrierWhite: {"RacingBarrierWhite", Vec2{100, 24}, 24, color.RGBA{235, 235, 235, 255}, '='},
	RacingCarBlack:     {"RacingCarBlack", Vec2{70, 36}, 26, color.RGBA{40, 40, 40, 255}, 'B'},
	RacingCarBlue:      {"RacingCarBlue", Vec2{70, 36}, 26, color.RGBA{50, 100, 230, 255}, '@'},
	RacingCarGreen:     {"RacingCarGreen", Vec2{70, 36}, 26, color.RGBA{60, 180, 80, 255}, 'G'},
	RacingCarRed:       {"RacingCarRed", Vec2{70, 36}, 26, color.RGBA{220, 50, 50, 255}, 'R'},
	RacingCarYellow:    {"RacingCarYellow", Vec2{70, 36}, 26, color.RGBA{240, 200, 40, 255}, 'Y'},
	RacingConeStraight: {"RacingConeStraight", Vec2{22, 22}, 11, color.RGBA{250, 130, 30, 255}, '^'},
}

func (p SpritePreset) info() presetInfo {
	if p < 0 || p >= spritePresetCount {
		return presetInfo{name: "Unknown", size: Vec2{16, 16}, radius: 8, color: color.RGBA{255, 0, 255, 255}, glyph: '?'}
	}
	return spritePresets[p]
}

func (p SpritePreset) String() string { return p.info().name }

// Size is the unscaled drawn size; the long side lies along the sprite's facing.
func (p SpritePreset) Size() Vec2 { return p.info().size }

// Radius is the unscaled collider radius.
func (p SpritePreset) Radius() float32 { return p.info().radius }

func (p SpritePreset) Color() color.RGBA { return p.info().color }

func (p SpritePreset) Glyph() rune { return p.info().glyph }

// Round reports whether the preset is drawn as a disc rather than a box.
func (p SpritePreset) Round() bool {
	switch p {
	case RacingBarrelBlue, RacingBarrelRed, RacingConeStraight:
		return true
	}
	return false
}

// SpritePresets returns every built-in preset.
func SpritePresets() []SpritePreset {
	presets := make([]SpritePreset, spritePresetCount)
	for i := range presets {
		presets[i] = SpritePreset(i)
	}
	return presets
}

// MusicPreset selects one of the built-in looping tracks.
type MusicPreset int

const (
	Classy8Bit MusicPreset = iota
	MysteriousMagic
	WhimsicalPopsicle
)

func (m MusicPreset) String() string {
	switch m {
	case Classy8Bit:
		return "Classy8Bit"
	case MysteriousMagic:
		return "MysteriousMagic"
	case WhimsicalPopsicle:
		return "WhimsicalPopsicle"
	default:
		return "Unknown"
	}
}

// SfxPreset selects one of the built-in one-shot sound effects.
type SfxPreset int

const (
	Click SfxPreset = iota
	Confirmation1
	EnemyHit
	Impact1
	Jingle1
	Minimize1
	Minimize2
	Switch1
)

func (s SfxPreset) String() string {
	switch s {
	case Click:
		return "Click"
	case Confirmation1:
		return "Confirmation1"
	case EnemyHit:
		return "EnemyHit"
	case Impact1:
		return "Impact1"
	case Jingle1:
		return "Jingle1"
	case Minimize1:
		return "Minimize1"
	case Minimize2:
		return "Minimize2"
	case Switch1:
		return "Switch1"
	default:
		return "Unknown"
	}
}
