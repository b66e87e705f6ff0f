package willowmap

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a Surface submits the draw.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and anchors
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area. NaN sizes count as empty.
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with positive area.
// Adjacent rectangles (sharing only an edge) do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Anchor presets, as fractions of an icon's width and height.
var (
	AnchorBottomCenter = Vec2{0.5, 1}
	AnchorCenter       = Vec2{0.5, 0.5}
	AnchorTopLeft      = Vec2{0, 0}
)

// DragState is the phase of a marker drag reported to OnMarkerDragged.
type DragState uint8

const (
	DragNone      DragState = iota // no marker is being dragged
	DragStarting                   // a marker was armed for dragging
	DragDragging                   // the armed marker follows the pointer
	DragEnding                     // the pointer was released; position committed
	DragCanceling                  // the gesture was cancelled; position rolled back
)

var dragStateNames = [...]string{"none", "starting", "dragging", "ending", "canceling"}

func (s DragState) String() string {
	if int(s) < len(dragStateNames) {
		return dragStateNames[s]
	}
	return "unknown"
}

// PointerKind identifies a kind of pointer event delivered to the Router.
type PointerKind uint8

const (
	PointerDown      PointerKind = iota // a pointer touched down
	PointerMove                         // the pointer moved while down
	PointerUp                           // the pointer was released
	PointerCancel                       // the host aborted the gesture
	PointerTap                          // a confirmed single tap
	PointerLongPress                    // the pointer was held in place
)

var pointerKindNames = [...]string{"down", "move", "up", "cancel", "tap", "longpress"}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// TextAlign controls horizontal label alignment relative to the draw point.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // text starts at the draw point
	TextAlignCenter                  // text is centered on the draw point
	TextAlignRight                   // text ends at the draw point
)
