package willowmap

// EventSink is the interface for optional ECS integration.
// When set on an Overlay, focus and drag events are forwarded to it.
type EventSink interface {
	EmitEvent(event MarkerEvent)
}

// MarkerEventType identifies a kind of MarkerEvent.
type MarkerEventType uint8

const (
	// EventFocusChanged reports a focus change. MarkerID is 0 when focus
	// was cleared.
	EventFocusChanged MarkerEventType = iota
	// EventMarkerDragged reports a drag state change.
	EventMarkerDragged
	// EventMarkerTapped reports a tap that hit a marker.
	EventMarkerTapped
)

// MarkerEvent carries overlay event data for the ECS bridge.
type MarkerEvent struct {
	Type     MarkerEventType
	MarkerID uint32
	// Drag fields (valid for EventMarkerDragged)
	DragState DragState
	Lat, Lng  float64 // marker position in degrees at emission time
}

func (o *Overlay) emitEvent(t MarkerEventType, m *Marker, state DragState) {
	if o.sink == nil {
		return
	}
	ev := MarkerEvent{Type: t, DragState: state}
	if m != nil {
		ev.MarkerID = m.ID
		ev.Lat = m.Position.Lat.Degrees()
		ev.Lng = m.Position.Lng.Degrees()
	}
	o.sink.EmitEvent(ev)
}
