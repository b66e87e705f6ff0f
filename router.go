package willowmap

import "github.com/golang/geo/s2"

// PointerEvent is a pointer event in view pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Router turns pointer events into taps and drags on an Overlay's markers.
// Events it does not consume fall through to the host (typically map
// panning and zooming).
type Router struct {
	overlay *Overlay

	// TapHandler is called for each marker under a tap, topmost first, until
	// one returns true. The default focuses the marker and opens Popup on it
	// when set.
	TapHandler func(m *Marker) bool
	// OnUnhandledTap is called when a tap hits no marker or no handler
	// accepts it. The default clears focus.
	OnUnhandledTap func(x, y float64)
	// RequestRedraw is called after every drag move, commit, or rollback.
	RequestRedraw func()

	// Popup, when set, is opened on markers focused by the default tap
	// handler. Taps on the open popup never reach the markers below it.
	Popup *InfoWindow
	// OnPopupTap is called with the bound marker when a tap lands on the
	// open Popup.
	OnPopupTap func(m *Marker)
}

// NewRouter creates a router for o with the default tap handling.
func NewRouter(o *Overlay) *Router {
	r := &Router{overlay: o}
	r.TapHandler = r.defaultTap
	r.OnUnhandledTap = func(float64, float64) { o.SetFocus(nil) }
	return r
}

func (r *Router) defaultTap(m *Marker) bool {
	r.overlay.SetFocus(m)
	if r.Popup != nil {
		r.Popup.Open(m, r.overlay, 0, 0)
	}
	return true
}

// State returns the overlay's drag state.
func (r *Router) State() DragState {
	return r.overlay.DragState()
}

// HandleEvent routes ev against the markers drawn for vp. It reports whether
// the event was consumed.
func (r *Router) HandleEvent(ev PointerEvent, vp Viewport) bool {
	if r.overlay.Dragging() != nil {
		return r.handleDrag(ev, vp)
	}
	switch ev.Kind {
	case PointerTap:
		return r.handleTap(ev, vp)
	case PointerLongPress:
		return r.handleLongPress(ev, vp)
	}
	return false
}

func (r *Router) handleTap(ev PointerEvent, vp Viewport) bool {
	if p := r.Popup; p != nil && p.contains(vp, ev.X, ev.Y) {
		if r.OnPopupTap != nil {
			r.OnPopupTap(p.Marker())
		}
		return true
	}
	q := vp.ViewToMap(Vec2{ev.X, ev.Y})
	for _, m := range r.overlay.HitTestAll(q.X, q.Y) {
		r.overlay.emitEvent(EventMarkerTapped, m, DragNone)
		if r.TapHandler != nil && r.TapHandler(m) {
			return true
		}
	}
	if r.OnUnhandledTap != nil {
		r.OnUnhandledTap(q.X, q.Y)
	}
	return false
}

func (r *Router) handleLongPress(ev PointerEvent, vp Viewport) bool {
	q := vp.ViewToMap(Vec2{ev.X, ev.Y})
	for _, m := range r.overlay.HitTestAll(q.X, q.Y) {
		if m.Draggable {
			r.BeginDrag(m, q)
			return true
		}
	}
	return false
}

// BeginDrag arms m for dragging from the map-pixel pointer position q. The
// grab offset keeps the marker's anchor at the same distance from the
// pointer while it moves.
func (r *Router) BeginDrag(m *Marker, q Vec2) {
	r.overlay.SetDragging(m, m.drawPos.Sub(q))
}

func (r *Router) handleDrag(ev PointerEvent, vp Viewport) bool {
	o := r.overlay
	switch ev.Kind {
	case PointerMove:
		if ll, ok := r.dragTarget(ev, vp); ok {
			o.DragTo(ll)
		}
	case PointerUp:
		if ll, ok := r.dragTarget(ev, vp); ok {
			o.Dragging().SetPosition(ll)
		}
		o.EndDrag()
	case PointerCancel:
		o.CancelDrag()
	default:
		// Down, Tap and LongPress during a drag are swallowed.
		return true
	}
	r.requestRedraw()
	return true
}

// dragTarget is the geographic position under the pointer, shifted by the
// grab offset.
func (r *Router) dragTarget(ev PointerEvent, vp Viewport) (s2.LatLng, bool) {
	if vp.Projection == nil {
		return s2.LatLng{}, false
	}
	q := vp.ViewToMap(Vec2{ev.X, ev.Y})
	p := q.Add(r.overlay.DragOffset())
	ll := vp.Projection.FromPixels(p.X, p.Y)
	return ll, ll.IsValid()
}

func (r *Router) requestRedraw() {
	if r.RequestRedraw != nil {
		r.RequestRedraw()
	}
}
