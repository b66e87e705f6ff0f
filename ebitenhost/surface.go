package ebitenhost

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/willowmap"
)

// --- White pixel singleton (no sync.Once; ebiten draws on one goroutine) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for icons without pixel data.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Surface draws willowmap icons and labels onto an *ebiten.Image. Its
// transform stack is a GeoM stack with canvas-style (post-multiplied)
// semantics.
type Surface struct {
	dst   *ebiten.Image
	geom  ebiten.GeoM
	stack []ebiten.GeoM

	images  map[*willowmap.Icon]*ebiten.Image
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

type faceKey struct {
	size float64
	bold bool
}

// NewSurface creates a surface drawing onto dst. The Go fonts are parsed
// once here.
func NewSurface(dst *ebiten.Image) (*Surface, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: parse regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: parse bold font: %w", err)
	}
	return &Surface{
		dst:     dst,
		images:  make(map[*willowmap.Icon]*ebiten.Image),
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]*text.GoTextFace),
	}, nil
}

// SetTarget points the surface at a new destination and resets the
// transform. Call once per frame with the screen image.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
	s.geom.Reset()
	s.stack = s.stack[:0]
}

// GeoM returns the current transform.
func (s *Surface) GeoM() ebiten.GeoM {
	return s.geom
}

// Save pushes the current transform.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.geom)
}

// Restore pops the transform pushed by the matching Save.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		panic("ebitenhost: Surface.Restore without Save")
	}
	s.geom = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// concat applies op before the current transform.
func (s *Surface) concat(op ebiten.GeoM) {
	op.Concat(s.geom)
	s.geom = op
}

// Translate moves the origin by (dx, dy).
func (s *Surface) Translate(dx, dy float32) {
	var op ebiten.GeoM
	op.Translate(float64(dx), float64(dy))
	s.concat(op)
}

// Scale scales about the origin.
func (s *Surface) Scale(sx, sy float32) {
	var op ebiten.GeoM
	op.Scale(float64(sx), float64(sy))
	s.concat(op)
}

// Rotate rotates clockwise by deg degrees about the origin.
func (s *Surface) Rotate(deg float32) {
	var op ebiten.GeoM
	op.Rotate(float64(deg) * math.Pi / 180)
	s.concat(op)
}

// DrawIcon draws icon with its top-left corner at (x, y).
func (s *Surface) DrawIcon(icon *willowmap.Icon, x, y float32) {
	if s.dst == nil || !icon.Valid() {
		return
	}
	img := s.iconImage(icon)
	b := img.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(icon.Width/float64(b.Dx()), icon.Height/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.GeoM.Concat(s.geom)
	op.Filter = ebiten.FilterLinear

	tint := icon.Tint
	if icon.Image != nil && tint == (willowmap.Color{}) {
		tint = willowmap.ColorWhite
	}
	a := float32(tint.A)
	op.ColorScale.Scale(float32(tint.R)*a, float32(tint.G)*a, float32(tint.B)*a, a)

	s.dst.DrawImage(img, op)
}

func (s *Surface) iconImage(icon *willowmap.Icon) *ebiten.Image {
	if icon.Image == nil {
		return ensureWhitePixel()
	}
	if img, ok := s.images[icon]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(icon.Image)
	s.images[icon] = img
	return img
}

// DrawText draws text with its baseline at (x, y), aligned per style.
func (s *Surface) DrawText(str string, x, y float32, style *willowmap.LabelStyle) {
	if s.dst == nil || str == "" || style == nil {
		return
	}
	face := s.face(style)
	m := face.Metrics()

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)-m.HAscent)
	op.GeoM.Concat(s.geom)
	switch style.Align {
	case willowmap.TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case willowmap.TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	c := style.Color
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)

	text.Draw(s.dst, str, face, op)
}

func (s *Surface) face(style *willowmap.LabelStyle) *text.GoTextFace {
	key := faceKey{size: style.Size, bold: style.Bold}
	if f, ok := s.faces[key]; ok {
		return f
	}
	src := s.regular
	if style.Bold {
		src = s.bold
	}
	f := &text.GoTextFace{Source: src, Size: style.Size}
	s.faces[key] = f
	return f
}

var _ willowmap.Surface = (*Surface)(nil)
