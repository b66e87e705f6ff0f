package willowmap

import "image"

// Surface is a raw drawing target with a canvas-style transform stack.
// Transform calls post-multiply the current matrix, so the most recent call
// is applied to draw coordinates first. All values are float32, matching the
// precision of the GPU vertices the host eventually submits.
//
// The overlay never talks to a Surface directly; it issues draw calls through
// a SafeCanvas, which keeps the values passed here near the origin.
type Surface interface {
	Save()
	Restore()
	Translate(dx, dy float32)
	Scale(sx, sy float32)
	Rotate(deg float32)
	// DrawIcon draws icon with its top-left corner at (x, y).
	DrawIcon(icon *Icon, x, y float32)
	// DrawText draws a label whose baseline is anchored at (x, y).
	DrawText(text string, x, y float32, style *LabelStyle)
}

// Icon is a decoded marker image plus its logical size in pixels. Decoding
// and caching of the pixel data is the host's responsibility.
type Icon struct {
	Name          string
	Width, Height float64
	// Image holds the decoded pixels. Surfaces that cannot use pixels (or
	// when Image is nil) draw a solid Tint-colored box instead.
	Image image.Image
	// Tint multiplies the image colors.
	Tint Color
	// Glyph is used by character-cell surfaces.
	Glyph rune
}

// NewIcon creates a solid icon of the given size and tint.
func NewIcon(name string, w, h float64, tint Color) *Icon {
	return &Icon{Name: name, Width: w, Height: h, Tint: tint, Glyph: '●'}
}

// Valid reports whether the icon can be drawn.
func (i *Icon) Valid() bool {
	return i != nil && i.Width > 0 && i.Height > 0
}

// LabelStyle configures marker label text. One value is built from Config
// and passed down to every draw; there is no process-wide paint.
type LabelStyle struct {
	Size  float64
	Align TextAlign
	Bold  bool
	Color Color
	// OffsetY moves the label baseline relative to the icon's top edge.
	OffsetY float64
}

// DefaultLabelStyle returns centered bold labels.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		Size:    14,
		Align:   TextAlignCenter,
		Bold:    true,
		Color:   Color{0.1, 0.1, 0.1, 1},
		OffsetY: -4,
	}
}
