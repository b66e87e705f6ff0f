package willowmap

import (
	"math"

	"github.com/golang/geo/s2"
)

// Projection maps between geographic positions and map pixels for the
// current view. Implementations must be self-consistent within a frame.
type Projection interface {
	// ToPixels returns the map-pixel position of ll.
	ToPixels(ll s2.LatLng) Vec2
	// FromPixels returns the geographic position at map pixel (x, y).
	FromPixels(x, y float64) s2.LatLng
	// ScreenBounds is the unrotated view rectangle in map pixels.
	ScreenBounds() Rect
	// Scale is the transient view scale (1 = none, >1 = magnified).
	Scale() float64
	// Rotation is the map rotation in degrees, clockwise.
	Rotation() float64
}

// Viewport is the per-frame snapshot of the view. It is captured once and
// then held immutable for culling, drawing, and hit testing so the three
// never disagree.
type Viewport struct {
	// Bounds is the unrotated view rectangle in map pixels.
	Bounds Rect
	// Scale is the transient view scale.
	Scale float64
	// Rotation is the map rotation in degrees.
	Rotation float64
	// Projection converts marker positions for this frame.
	Projection Projection
}

// Snapshot captures the projection's current view.
func Snapshot(p Projection) Viewport {
	return Viewport{
		Bounds:     p.ScreenBounds(),
		Scale:      p.Scale(),
		Rotation:   p.Rotation(),
		Projection: p,
	}
}

// Empty reports whether the viewport cannot show anything: zero-size bounds,
// a non-positive scale, or no projection.
func (v Viewport) Empty() bool {
	return v.Bounds.Empty() || !(v.Scale > 0) || v.Projection == nil
}

// MarkerScale is the ambient scale applied to markers so they keep their
// device size while the view itself is scaled.
func (v Viewport) MarkerScale() float64 {
	if !(v.Scale > 0) {
		return 1
	}
	return 1 / v.Scale
}

// ViewSize returns the device size of the view in view pixels.
func (v Viewport) ViewSize() Vec2 {
	return Vec2{v.Bounds.Width * v.Scale, v.Bounds.Height * v.Scale}
}

// MapToView converts map pixels to view pixels:
//
//	view = viewCenter + Scale * Rotate(Rotation) * (p - boundsCenter)
func (v Viewport) MapToView(p Vec2) Vec2 {
	c := v.Bounds.Center()
	r := rotateVec(p.Sub(c), v.Rotation)
	size := v.ViewSize()
	return Vec2{size.X/2 + r.X*v.Scale, size.Y/2 + r.Y*v.Scale}
}

// ViewToMap converts view pixels (pointer coordinates) to map pixels.
func (v Viewport) ViewToMap(p Vec2) Vec2 {
	size := v.ViewSize()
	s := v.Scale
	if !(s > 0) {
		s = 1
	}
	d := Vec2{(p.X - size.X/2) / s, (p.Y - size.Y/2) / s}
	return v.Bounds.Center().Add(rotateVec(d, -v.Rotation))
}

// CullBounds returns the axis-aligned bounding rect, in map pixels, of the
// area visible through the rotated view.
func (v Viewport) CullBounds() Rect {
	if v.Rotation == 0 || math.Mod(v.Rotation, 360) == 0 {
		return v.Bounds
	}
	size := v.ViewSize()

	// Transform the four view corners to map space.
	p0 := v.ViewToMap(Vec2{0, 0})
	p1 := v.ViewToMap(Vec2{size.X, 0})
	p2 := v.ViewToMap(Vec2{size.X, size.Y})
	p3 := v.ViewToMap(Vec2{0, size.Y})

	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
