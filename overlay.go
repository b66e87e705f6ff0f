package willowmap

import (
	"fmt"
	"time"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"
)

// Overlay draws a set of markers above a map and resolves hits against them.
//
// An Overlay is not safe for concurrent use. Draw and the input methods must
// be called from the same goroutine, normally the host's update/draw loop.
type Overlay struct {
	source  ItemSource
	cfg     Config
	canvas  *SafeCanvas
	log     zerolog.Logger
	metrics overlayMetrics
	debug   bool

	markers   []*Marker
	members   mapset.Set[*Marker]
	visible   []*Marker
	populated bool

	lastViewport Viewport

	focused *Marker
	// pendingFocus holds one entry per focus change since the last Draw.
	pendingFocus []*Marker

	dragged    *Marker
	dragOrigin s2.LatLng
	dragOffset Vec2
	dragState  DragState

	onFocusChanged  func(o *Overlay, m *Marker)
	onMarkerDragged func(m *Marker, state DragState)
	sink            EventSink
}

// NewOverlay creates an overlay fed by source. Call Populate before the
// first Draw. A zero Config means DefaultConfig; otherwise start from
// DefaultConfig and override fields, since a zero bool turns its feature off.
func NewOverlay(source ItemSource, cfg Config) *Overlay {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if !(cfg.DragScale > 0) {
		cfg.DragScale = DefaultConfig().DragScale
	}
	canvas := NewSafeCanvas()
	canvas.SetEnabled(cfg.SafeCanvas)
	return &Overlay{
		source:  source,
		cfg:     cfg,
		canvas:  canvas,
		log:     zerolog.Nop(),
		metrics: newOverlayMetrics(),
		debug:   cfg.Debug,
		members: mapset.New[*Marker](),
	}
}

// SetLogger replaces the overlay's logger. The default discards everything.
func (o *Overlay) SetLogger(l zerolog.Logger) {
	o.log = l.With().Str("component", "overlay").Logger()
}

// SetDebugMode toggles strict checks and per-frame stats logging.
func (o *Overlay) SetDebugMode(enabled bool) {
	o.debug = enabled
}

// Canvas returns the SafeCanvas the overlay draws through.
func (o *Overlay) Canvas() *SafeCanvas {
	return o.canvas
}

// Config returns the overlay's configuration.
func (o *Overlay) Config() Config {
	return o.cfg
}

// SetDrawFocused controls whether the focused marker uses its FocusedIcon.
func (o *Overlay) SetDrawFocused(enabled bool) {
	o.cfg.DrawFocused = enabled
}

// SetEventSink sets the sink that receives focus and drag events.
func (o *Overlay) SetEventSink(sink EventSink) {
	o.sink = sink
}

// OnFocusChanged registers the focus callback. It runs inside Draw, once
// per focus change recorded since the previous frame.
func (o *Overlay) OnFocusChanged(fn func(o *Overlay, m *Marker)) {
	o.onFocusChanged = fn
}

// OnMarkerDragged registers the drag callback. It runs synchronously inside
// the call that changed the drag state.
func (o *Overlay) OnMarkerDragged(fn func(m *Marker, state DragState)) {
	o.onMarkerDragged = fn
}

// --- Population ---

// Populate rebuilds the marker list from the item source. Focus and drag
// references to markers that are not part of the new list are cleared.
func (o *Overlay) Populate() {
	n := 0
	if o.source != nil {
		n = o.source.Len()
	}

	o.markers = make([]*Marker, 0, n)
	o.members = mapset.New[*Marker]()
	o.visible = o.visible[:0]

	for i := 0; i < n; i++ {
		m := o.source.CreateItem(i)
		if m == nil {
			panic(fmt.Sprintf("willowmap: item source returned nil marker at index %d", i))
		}
		o.markers = append(o.markers, m)
		o.members.Put(m)
	}

	if o.focused != nil && !o.members.Has(o.focused) {
		o.focused = nil
		o.pendingFocus = append(o.pendingFocus, nil)
	}
	if o.dragged != nil && !o.members.Has(o.dragged) {
		o.clearDrag()
	}
	o.populated = true

	o.log.Debug().Int("markers", n).Msg("populated")
}

// Len returns the number of markers.
func (o *Overlay) Len() int {
	return len(o.markers)
}

// Item returns the marker at index i.
func (o *Overlay) Item(i int) *Marker {
	return o.markers[i]
}

// Markers returns the marker list. The slice must not be modified.
func (o *Overlay) Markers() []*Marker {
	return o.markers
}

// Visible returns the markers drawn in the last frame, in draw order.
// The dragged marker is never part of it.
func (o *Overlay) Visible() []*Marker {
	return o.visible
}

// LastViewport returns the viewport of the last drawn frame.
func (o *Overlay) LastViewport() Viewport {
	return o.lastViewport
}

// --- Drawing ---

// Draw renders the overlay onto s for the viewport vp. The shadow pass draws
// nothing. The main pass delivers pending focus events, then draws the
// background markers from the last index to the first, then the focused
// marker, then the dragged marker enlarged by Config.DragScale.
func (o *Overlay) Draw(s Surface, vp Viewport, shadow bool) {
	if !o.populated {
		panic("willowmap: Overlay.Draw before Populate")
	}
	if shadow {
		return
	}

	var start time.Time
	if o.debug {
		start = time.Now()
	}

	o.deliverFocusEvents()

	o.visible = o.visible[:0]
	o.lastViewport = vp
	if vp.Empty() {
		return
	}

	var stats debugStats
	stats.total = len(o.markers)

	cull := vp.CullBounds()
	scale := vp.MarkerScale()

	o.canvas.Begin(s, vp)

	for i := len(o.markers) - 1; i >= 0; i-- {
		m := o.markers[i]
		if m == o.focused || m == o.dragged {
			continue
		}
		switch o.cullMarker(m, vp, cull, scale) {
		case cullDraw:
			o.visible = append(o.visible, m)
			o.drawMarker(m, vp)
		case cullOutside:
			stats.culled++
		default:
			stats.skipped++
		}
	}

	if f := o.focused; f != nil && f != o.dragged {
		if o.cullMarker(f, vp, cull, scale) == cullDraw {
			o.visible = append(o.visible, f)
			o.drawMarker(f, vp)
		}
	}

	if d := o.dragged; d != nil && d.Visible {
		if o.placeMarker(d, vp, scale*o.cfg.DragScale) {
			o.drawMarker(d, vp)
			stats.dragged = true
		}
	}

	o.canvas.End()

	stats.visible = len(o.visible)
	o.metrics.frame(stats.visible)
	if o.debug {
		stats.drawTime = time.Since(start)
		o.debugLog(stats)
	}
}

type cullResult uint8

const (
	cullDraw cullResult = iota
	cullOutside
	cullSkipped
)

// cullMarker computes the marker's frame position and checks its drawing
// bounds against the cull rect using strict overlap.
func (o *Overlay) cullMarker(m *Marker, vp Viewport, cull Rect, scale float64) cullResult {
	if !m.Visible {
		return cullSkipped
	}
	if !o.placeMarker(m, vp, scale) {
		return cullSkipped
	}
	if !m.DrawingBounds(m.drawPos, m.drawScale, o.drawsFocused(m)).Intersects(cull) {
		return cullOutside
	}
	return cullDraw
}

// placeMarker stores the marker's map-pixel position and scale for this
// frame. It reports false for markers that cannot be drawn at all.
func (o *Overlay) placeMarker(m *Marker, vp Viewport, scale float64) bool {
	if !m.IconFor(o.drawsFocused(m)).Valid() {
		return false
	}
	p := vp.Projection.ToPixels(m.Position)
	if !p.IsFinite() {
		return false
	}
	m.drawPos = p
	m.drawScale = scale
	return true
}

func (o *Overlay) drawsFocused(m *Marker) bool {
	return o.cfg.DrawFocused && m == o.focused
}

// drawMarker draws the icon with its anchor on the marker's position,
// counter-rotated so it stays upright on a rotated map.
func (o *Overlay) drawMarker(m *Marker, vp Viewport) {
	c := o.canvas
	p := m.drawPos
	icon := m.IconFor(o.drawsFocused(m))
	a := m.clampedAnchor()

	c.Save()
	if m.drawScale != 1 {
		c.Scale(m.drawScale, m.drawScale, p.X, p.Y)
	}
	if vp.Rotation != 0 {
		c.Rotate(-vp.Rotation, p.X, p.Y)
	}

	x := p.X - a.X*icon.Width
	y := p.Y - a.Y*icon.Height
	c.DrawIcon(icon, x, y)

	if o.cfg.ShowLabels && m.Label != "" {
		c.DrawText(m.Label, x+icon.Width/2, y+o.cfg.Label.OffsetY, &o.cfg.Label)
	}
	c.Restore()
}

// --- Hit testing ---

// HitTest returns the topmost marker drawn in the last frame whose hit
// bounds contain the map-pixel point (x, y), or nil.
func (o *Overlay) HitTest(x, y float64) *Marker {
	for i := len(o.visible) - 1; i >= 0; i-- {
		if m := o.visible[i]; o.hits(m, x, y) {
			return m
		}
	}
	return nil
}

// HitTestAll returns every marker hit at (x, y), topmost first.
func (o *Overlay) HitTestAll(x, y float64) []*Marker {
	var hits []*Marker
	for i := len(o.visible) - 1; i >= 0; i-- {
		if m := o.visible[i]; o.hits(m, x, y) {
			hits = append(hits, m)
		}
	}
	return hits
}

func (o *Overlay) hits(m *Marker, x, y float64) bool {
	// Markers are drawn upright on a rotated map; undo the rotation about
	// the anchor before testing the axis-aligned bounds.
	q := Vec2{x, y}
	if rot := o.lastViewport.Rotation; rot != 0 {
		q = m.drawPos.Add(rotateVec(q.Sub(m.drawPos), rot))
	}
	hit := HitBounds(m.DrawingBounds(m.drawPos, m.drawScale, o.drawsFocused(m)))
	return hit.Contains(q.X, q.Y)
}

// --- Focus ---

// Focus returns the focused marker, or nil.
func (o *Overlay) Focus() *Marker {
	return o.focused
}

// SetFocus focuses m, or clears focus when m is nil. A change is delivered
// to OnFocusChanged on the next Draw. The previously focused marker's popup
// is closed.
func (o *Overlay) SetFocus(m *Marker) {
	if m == o.focused {
		return
	}
	if !o.debugCheckMember(m, "SetFocus") {
		return
	}
	prev := o.focused
	o.focused = m
	o.pendingFocus = append(o.pendingFocus, m)
	if prev != nil {
		prev.ClosePopup()
	}
}

// Blur clears focus if m holds it.
func (o *Overlay) Blur(m *Marker) {
	if m != nil && m == o.focused {
		o.SetFocus(nil)
	}
}

func (o *Overlay) deliverFocusEvents() {
	if len(o.pendingFocus) == 0 {
		return
	}
	pending := o.pendingFocus
	o.pendingFocus = nil
	for _, m := range pending {
		if o.onFocusChanged != nil {
			o.onFocusChanged(o, m)
		}
		o.emitEvent(EventFocusChanged, m, DragNone)
	}
}

// --- Dragging ---

// Dragging returns the dragged marker, or nil.
func (o *Overlay) Dragging() *Marker {
	return o.dragged
}

// DragState returns the current drag state.
func (o *Overlay) DragState() DragState {
	return o.dragState
}

// DragOffset returns the grab offset recorded by SetDragging: the map-pixel
// vector from the pointer to the marker's anchor.
func (o *Overlay) DragOffset() Vec2 {
	return o.dragOffset
}

// SetDragging starts dragging m with the given grab offset. A nil m ends any
// drag without committing or rolling back; it is a no-op when nothing is
// dragging.
func (o *Overlay) SetDragging(m *Marker, offset Vec2) {
	if m == nil {
		o.clearDrag()
		return
	}
	if !o.debugCheckMember(m, "SetDragging") {
		return
	}
	if o.dragged != nil && o.dragged != m {
		o.CancelDrag()
	}
	o.dragged = m
	o.dragOrigin = m.Position
	o.dragOffset = offset
	m.ClosePopup()
	o.setDragState(m, DragStarting)
}

// DragTo moves the dragged marker to ll. It reports false if nothing is
// dragging.
func (o *Overlay) DragTo(ll s2.LatLng) bool {
	m := o.dragged
	if m == nil {
		return false
	}
	m.SetPosition(ll)
	o.setDragState(m, DragDragging)
	return true
}

// EndDrag commits the dragged marker's current position and ends the drag.
func (o *Overlay) EndDrag() bool {
	m := o.dragged
	if m == nil {
		return false
	}
	o.setDragState(m, DragEnding)
	o.metrics.dragFinished(DragEnding)
	o.clearDrag()
	return true
}

// CancelDrag restores the dragged marker's position from drag start and
// ends the drag.
func (o *Overlay) CancelDrag() bool {
	m := o.dragged
	if m == nil {
		return false
	}
	m.SetPosition(o.dragOrigin)
	o.setDragState(m, DragCanceling)
	o.metrics.dragFinished(DragCanceling)
	o.clearDrag()
	return true
}

func (o *Overlay) setDragState(m *Marker, state DragState) {
	o.dragState = state
	o.log.Debug().Uint32("marker", m.ID).Stringer("state", state).Msg("drag")
	if o.onMarkerDragged != nil {
		o.onMarkerDragged(m, state)
	}
	o.emitEvent(EventMarkerDragged, m, state)
}

func (o *Overlay) clearDrag() {
	o.dragged = nil
	o.dragOrigin = s2.LatLng{}
	o.dragOffset = Vec2{}
	o.dragState = DragNone
}
