package willowmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	infoWindowOpenDuration  float32 = 0.2 // seconds
	infoWindowCloseDuration float32 = 0.1
	infoWindowMinScale      float32 = 0.01
)

// InfoWindow is a popup bound to one marker at a time. It pops open with a
// slight overshoot and shrinks away on close; the host draws it in Frame.
//
// There is no global animation manager; the host calls Update each frame.
type InfoWindow struct {
	// Title and Body are set by Open from the marker's payload.
	Title string
	Body  string

	// Width and Height are the unscaled window size in view pixels.
	Width  float64
	Height float64
	// LayoutAnchor is the point of the window, as a fraction of its size,
	// that sits on the marker. The default {0.5, 1} hangs the window by its
	// bottom center.
	LayoutAnchor Vec2

	marker  *Marker
	overlay *Overlay
	open    bool
	offset  Vec2

	tween  *gween.Tween
	scale  float64
	anchor Vec2
}

// NewInfoWindow returns a closed info window.
func NewInfoWindow() *InfoWindow {
	return &InfoWindow{
		LayoutAnchor: Vec2{0.5, 1},
		scale:        float64(infoWindowMinScale),
	}
}

// Open binds the window to m and starts the open animation. The window is
// shifted by (offsetX, offsetY) view pixels from the marker. A window open
// on another marker is rebound without animating closed.
func (w *InfoWindow) Open(m *Marker, o *Overlay, offsetX, offsetY float64) {
	if m == nil {
		return
	}
	if w.marker != nil && w.marker != m {
		w.unbind()
	}
	w.marker = m
	w.overlay = o
	w.open = true
	w.offset = Vec2{offsetX, offsetY}
	m.Popup = w

	w.Title = m.Title
	w.Body = m.Description
	if m.SubDescription != "" {
		w.Body += "\n" + m.SubDescription
	}

	w.scale = float64(infoWindowMinScale)
	w.tween = gween.New(infoWindowMinScale, 1, infoWindowOpenDuration, ease.OutBack)
}

// Close starts the close animation, unbinds the marker and blurs it through
// the overlay. Closing a closed window does nothing.
func (w *InfoWindow) Close() {
	if !w.open {
		return
	}
	w.open = false
	w.tween = gween.New(float32(w.scale), infoWindowMinScale, infoWindowCloseDuration, ease.Linear)

	m, o := w.marker, w.overlay
	w.unbind()
	if o != nil {
		o.Blur(m)
	}
}

func (w *InfoWindow) unbind() {
	if w.marker != nil && w.marker.Popup == w {
		w.marker.Popup = nil
	}
	w.marker = nil
	w.overlay = nil
}

// IsOpen reports whether the window is bound to a marker.
func (w *InfoWindow) IsOpen() bool {
	return w.open
}

// Visible reports whether the host should draw the window: it is open or
// still animating closed.
func (w *InfoWindow) Visible() bool {
	return w.open || w.tween != nil
}

// Marker returns the bound marker, or nil.
func (w *InfoWindow) Marker() *Marker {
	return w.marker
}

// Update advances the animation by dt seconds.
func (w *InfoWindow) Update(dt float32) {
	if w.tween == nil {
		return
	}
	val, finished := w.tween.Update(dt)
	w.scale = float64(val)
	if finished {
		w.tween = nil
	}
}

// Scale returns the current animation scale.
func (w *InfoWindow) Scale() float64 {
	return w.scale
}

// Anchor returns the map-pixel point the window hangs from: the top center
// of the bound marker's hit bounds. After Close it keeps the last anchor so
// the close animation stays in place.
func (w *InfoWindow) Anchor(proj Projection) Vec2 {
	m := w.marker
	if m == nil || proj == nil {
		return w.anchor
	}
	scale := 1.0
	if s := proj.Scale(); s > 0 {
		scale = 1 / s
	}
	focused := w.overlay != nil && w.overlay.drawsFocused(m)
	hit := HitBounds(m.DrawingBounds(proj.ToPixels(m.Position), scale, focused))
	if hit.Empty() {
		return w.anchor
	}
	w.anchor = Vec2{hit.X + hit.Width/2, hit.Y}
	return w.anchor
}

// Offset returns the view-pixel offset passed to Open.
func (w *InfoWindow) Offset() Vec2 {
	return w.offset
}

// Frame returns the window's box in view pixels for vp, scaled by the
// animation. Its LayoutAnchor point sits Offset away from the marker's
// anchor.
func (w *InfoWindow) Frame(vp Viewport) Rect {
	a := w.Anchor(vp.Projection)
	p := vp.MapToView(a).Add(w.offset)
	width := w.Width * w.scale
	height := w.Height * w.scale
	return Rect{
		X:      p.X - w.LayoutAnchor.X*width,
		Y:      p.Y - w.LayoutAnchor.Y*height,
		Width:  width,
		Height: height,
	}
}

// contains reports whether view point (x, y) is on the open window.
func (w *InfoWindow) contains(vp Viewport, x, y float64) bool {
	if !w.open || w.marker == nil {
		return false
	}
	f := w.Frame(vp)
	return !f.Empty() && f.Contains(x, y)
}
