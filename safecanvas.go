package willowmap

import "math"

// SafeCanvas wraps a Surface and recenters every frame on the viewport's
// integer top-left corner, so the float32 values reaching the Surface stay
// within a few thousand units of zero however far the map is scrolled.
//
// Logical coordinates passed to SafeCanvas are map pixels (float64). Each is
// shifted by the integer offset in float64 before conversion; the fractional
// remainder, scale and rotation are applied once on the Surface in Begin.
type SafeCanvas struct {
	surface Surface
	enabled bool
	xOffset int
	yOffset int
	depth   int
}

// NewSafeCanvas returns an enabled SafeCanvas.
func NewSafeCanvas() *SafeCanvas {
	return &SafeCanvas{enabled: true}
}

// SetEnabled toggles recentering. When disabled, the full map-pixel
// translation is pushed to the Surface as a float32 and coordinates pass
// through unshifted.
func (c *SafeCanvas) SetEnabled(enabled bool) {
	if c.surface != nil {
		panic("willowmap: SafeCanvas.SetEnabled during a frame")
	}
	c.enabled = enabled
}

// Enabled reports whether recentering is active.
func (c *SafeCanvas) Enabled() bool {
	return c.enabled
}

// Offset returns the integer offset added to logical coordinates this frame.
func (c *SafeCanvas) Offset() (x, y int) {
	return c.xOffset, c.yOffset
}

// Begin starts a frame on s for the viewport vp. The surface state is saved
// and must be restored with End.
//
// The surface ends up holding Scale(vp.Scale) * Translate(-frac) *
// Rotate(vp.Rotation about the bounds center), which maps a logical point p
// to the same view pixel as vp.MapToView(p).
func (c *SafeCanvas) Begin(s Surface, vp Viewport) {
	if c.surface != nil {
		panic("willowmap: SafeCanvas.Begin while a frame is active")
	}
	c.surface = s
	c.depth = 0
	s.Save()

	if vp.Scale > 0 && vp.Scale != 1 {
		s.Scale(float32(vp.Scale), float32(vp.Scale))
	}
	if c.enabled {
		c.xOffset = -int(math.Trunc(vp.Bounds.X))
		c.yOffset = -int(math.Trunc(vp.Bounds.Y))
		fx := vp.Bounds.X + float64(c.xOffset)
		fy := vp.Bounds.Y + float64(c.yOffset)
		s.Translate(float32(-fx), float32(-fy))
	} else {
		c.xOffset, c.yOffset = 0, 0
		s.Translate(float32(-vp.Bounds.X), float32(-vp.Bounds.Y))
	}

	if vp.Rotation != 0 {
		center := vp.Bounds.Center()
		c.Rotate(vp.Rotation, center.X, center.Y)
	}
}

// End finishes the frame and restores the surface to its state before Begin.
// Any Save left open by the caller is a programming error.
func (c *SafeCanvas) End() {
	c.mustBeActive("End")
	if c.depth != 0 {
		panic("willowmap: SafeCanvas.End with unbalanced Save")
	}
	c.surface.Restore()
	c.surface = nil
}

// Active reports whether a frame is in progress.
func (c *SafeCanvas) Active() bool {
	return c.surface != nil
}

func (c *SafeCanvas) mustBeActive(op string) {
	if c.surface == nil {
		panic("willowmap: SafeCanvas." + op + " outside Begin/End")
	}
}

func (c *SafeCanvas) safeX(x float64) float32 { return float32(x + float64(c.xOffset)) }
func (c *SafeCanvas) safeY(y float64) float32 { return float32(y + float64(c.yOffset)) }

// Save pushes the current transform.
func (c *SafeCanvas) Save() {
	c.mustBeActive("Save")
	c.depth++
	c.surface.Save()
}

// Restore pops the transform pushed by the matching Save.
func (c *SafeCanvas) Restore() {
	c.mustBeActive("Restore")
	if c.depth == 0 {
		panic("willowmap: SafeCanvas.Restore without Save")
	}
	c.depth--
	c.surface.Restore()
}

// Translate moves by a relative delta. Deltas are offset-free.
func (c *SafeCanvas) Translate(dx, dy float64) {
	c.mustBeActive("Translate")
	c.surface.Translate(float32(dx), float32(dy))
}

// Scale scales by (sx, sy) about the logical pivot (px, py).
func (c *SafeCanvas) Scale(sx, sy, px, py float64) {
	c.mustBeActive("Scale")
	x, y := c.safeX(px), c.safeY(py)
	c.surface.Translate(x, y)
	c.surface.Scale(float32(sx), float32(sy))
	c.surface.Translate(-x, -y)
}

// Rotate rotates by deg degrees about the logical pivot (px, py).
func (c *SafeCanvas) Rotate(deg, px, py float64) {
	c.mustBeActive("Rotate")
	x, y := c.safeX(px), c.safeY(py)
	c.surface.Translate(x, y)
	c.surface.Rotate(float32(deg))
	c.surface.Translate(-x, -y)
}

// DrawIcon draws icon with its top-left corner at logical (x, y).
func (c *SafeCanvas) DrawIcon(icon *Icon, x, y float64) {
	c.mustBeActive("DrawIcon")
	c.surface.DrawIcon(icon, c.safeX(x), c.safeY(y))
}

// DrawText draws a label anchored at logical (x, y).
func (c *SafeCanvas) DrawText(text string, x, y float64, style *LabelStyle) {
	c.mustBeActive("DrawText")
	c.surface.DrawText(text, c.safeX(x), c.safeY(y), style)
}
