package engine

import (
	"fmt"
	"math"
)

// Rotations in radians. Zero faces right and angles grow counter-clockwise.
const (
	Right     float32 = 0
	Up        float32 = math.Pi * 0.5
	Left      float32 = math.Pi
	Down      float32 = math.Pi * 1.5
	East              = Right
	North             = Up
	West              = Left
	South             = Down
	NorthEast float32 = math.Pi * 0.25
	NorthWest float32 = math.Pi * 0.75
	SouthWest float32 = math.Pi * 1.25
	SouthEast float32 = math.Pi * 1.75
)

// Vec2 is a point or offset in world space. The origin is the window centre and y grows upward.
type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

func (v Vec2) Distance(o Vec2) float32 {
	return v.Sub(o).Length()
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	x, y := float64(v.X), float64(v.Y)
	return Vec2{X: float32(x*cos - y*sin), Y: float32(x*sin + y*cos)}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}
