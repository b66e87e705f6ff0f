package willowmap

import (
	"math"

	"github.com/golang/geo/s2"
)

// markerIDCounter is a plain counter (no atomic; willowmap is single-threaded).
var markerIDCounter uint32

func nextMarkerID() uint32 {
	markerIDCounter++
	return markerIDCounter
}

// Popup is an auxiliary view bound to a marker, such as an info window.
// The overlay closes it when its marker starts dragging or loses focus.
type Popup interface {
	Close()
}

// Marker is a single map marker. Markers are created by an ItemSource during
// Overlay.Populate and live until the next Populate.
type Marker struct {
	// Identity
	ID uint32

	// Payload (opaque to the overlay)
	Title          string
	Description    string
	SubDescription string
	UserData       any

	// Position is the geographic location the anchor is pinned to.
	Position s2.LatLng
	// Anchor is the fractional point of the icon that sits on Position.
	// Components are clamped to [0, 1] when used.
	Anchor Vec2

	// Icon is drawn normally; FocusedIcon (if set) while the marker has focus.
	Icon        *Icon
	FocusedIcon *Icon
	// Label is optional text drawn above the icon.
	Label string

	// Visible is the should-draw flag.
	Visible bool
	// Draggable allows a long press to start dragging the marker.
	Draggable bool

	// Popup is closed when the marker starts dragging or loses focus.
	Popup Popup

	// Computed during Draw for the most recent frame.
	drawPos   Vec2
	drawScale float64
}

// NewMarker creates a visible marker at ll with a bottom-center anchor.
func NewMarker(title string, ll s2.LatLng, icon *Icon) *Marker {
	return &Marker{
		ID:       nextMarkerID(),
		Title:    title,
		Position: ll,
		Anchor:   AnchorBottomCenter,
		Icon:     icon,
		Visible:  true,
	}
}

// IconFor returns the icon for the given focus state.
func (m *Marker) IconFor(focused bool) *Icon {
	if focused && m.FocusedIcon != nil {
		return m.FocusedIcon
	}
	return m.Icon
}

// SetPosition moves the marker to ll.
func (m *Marker) SetPosition(ll s2.LatLng) {
	m.Position = ll
}

// ClosePopup closes the bound popup, if any.
func (m *Marker) ClosePopup() {
	if m.Popup != nil {
		m.Popup.Close()
	}
}

// clampedAnchor returns the anchor with each component clamped to [0, 1].
// NaN components fall back to the bottom-center preset.
func (m *Marker) clampedAnchor() Vec2 {
	a := m.Anchor
	if math.IsNaN(a.X) {
		a.X = AnchorBottomCenter.X
	}
	if math.IsNaN(a.Y) {
		a.Y = AnchorBottomCenter.Y
	}
	return Vec2{clamp01(a.X), clamp01(a.Y)}
}

// iconRect returns the rectangle the icon occupies when its anchor sits on
// pos, scaled by scale.
func iconRect(icon *Icon, anchor Vec2, pos Vec2, scale float64) Rect {
	w := icon.Width * scale
	h := icon.Height * scale
	return Rect{X: pos.X - anchor.X*w, Y: pos.Y - anchor.Y*h, Width: w, Height: h}
}

// DrawingBounds returns the marker's drawing bounds at map-pixel position
// pos: the icon rectangle extended downward by its own height. The extra
// half leaves room for the icon's reflection below the anchor and is what the
// overlay culls against.
func (m *Marker) DrawingBounds(pos Vec2, scale float64, focused bool) Rect {
	icon := m.IconFor(focused)
	if !icon.Valid() {
		return Rect{}
	}
	r := iconRect(icon, m.clampedAnchor(), pos, scale)
	r.Height *= 2
	return r
}

// HitBounds derives the tappable rectangle from DrawingBounds by discarding
// its bottom half:
//
//	hit = draw with bottom = draw.bottom - draw.height/2
func HitBounds(draw Rect) Rect {
	draw.Height -= draw.Height / 2
	return draw
}

// ItemSource supplies markers to Overlay.Populate.
type ItemSource interface {
	// Len returns the number of items.
	Len() int
	// CreateItem builds the marker for index i. It must not return nil.
	CreateItem(i int) *Marker
}

// SliceSource is an in-memory ItemSource.
type SliceSource []*Marker

// Len returns the number of markers.
func (s SliceSource) Len() int { return len(s) }

// CreateItem returns the i-th marker.
func (s SliceSource) CreateItem(i int) *Marker { return s[i] }
