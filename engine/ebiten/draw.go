package ebiten

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/roadrush/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	backgroundColor = color.RGBA{30, 30, 36, 255}
	textColor       = color.RGBA{240, 240, 240, 255}
	windshieldColor = color.RGBA{20, 20, 20, 160}
)

// WorldToScreen converts a world position (origin at the centre, y up) to screen pixels.
func WorldToScreen(p, dims engine.Vec2) (x, y float64) {
	return float64(dims.X/2 + p.X), float64(dims.Y/2 - p.Y)
}

// renderer draws sprites as rotated tinted rectangles and texts with a TrueType face.
type renderer struct {
	pixel  *ebiten.Image
	source *opentype.Font
	faces  map[float32]font.Face
	logger *slog.Logger
}

func newRenderer(logger *slog.Logger) *renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	source, err := opentype.Parse(goregular.TTF)
	if err != nil {
		logger.Warn("parse bundled font, falling back to basicfont", "error", err)
	}
	return &renderer{
		pixel:  pixel,
		source: source,
		faces:  make(map[float32]font.Face),
		logger: logger,
	}
}

func (r *renderer) face(size float32) font.Face {
	if face, ok := r.faces[size]; ok {
		return face
	}

	var face font.Face = basicfont.Face7x13
	if r.source != nil {
		f, err := opentype.NewFace(r.source, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			r.logger.Warn("create font face", "size", size, "error", err)
		} else {
			face = f
		}
	}
	r.faces[size] = face
	return face
}

func (r *renderer) draw(screen *ebiten.Image, e *engine.Engine) {
	screen.Fill(backgroundColor)
	dims := e.WindowDimensions

	for _, sprite := range e.SpritesByLayer() {
		r.drawSprite(screen, sprite, dims)
	}
	for _, t := range e.TextsByLayer() {
		r.drawText(screen, t, dims)
	}
}

func (r *renderer) drawSprite(screen *ebiten.Image, sprite *engine.Sprite, dims engine.Vec2) {
	x, y := WorldToScreen(sprite.Translation, dims)
	if sprite.Preset.Round() {
		vector.DrawFilledCircle(screen, float32(x), float32(y), sprite.Radius(), sprite.Color(), true)
		return
	}

	size := sprite.Size()
	// Screen y points down, so a counter-clockwise world rotation is clockwise on screen.
	rotation := -float64(sprite.Rotation)

	r.fillRect(screen, x, y, float64(size.X), float64(size.Y), 0, rotation, sprite.Color())
	// A dark band toward the front shows which way the sprite faces.
	r.fillRect(screen, x, y, float64(size.X)*0.2, float64(size.Y)*0.8, float64(size.X)*0.25, rotation, windshieldColor)
}

// fillRect draws a w x h rectangle centred at (x, y) after shifting it offset
// along its own facing and rotating it by rotation.
func (r *renderer) fillRect(screen *ebiten.Image, x, y, w, h, offset, rotation float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(offset, 0)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(r.pixel, op)
}

func (r *renderer) drawText(screen *ebiten.Image, t *engine.Text, dims engine.Vec2) {
	if t.Value == "" {
		return
	}
	face := r.face(t.FontSize)
	bounds := text.BoundString(face, t.Value)
	x, y := WorldToScreen(t.Translation, dims)

	op := &ebiten.DrawImageOptions{}
	// Centre the string on its translation; the text origin is the baseline start.
	op.GeoM.Translate(-float64(bounds.Min.X+bounds.Dx()/2), -float64(bounds.Min.Y+bounds.Dy()/2))
	op.GeoM.Scale(float64(t.Scale), float64(t.Scale))
	op.GeoM.Rotate(-float64(t.Rotation))
	op.GeoM.Translate(math.Round(x), math.Round(y))
	op.ColorScale.ScaleWithColor(textColor)
	text.DrawWithOptions(screen, t.Value, face, op)
}
