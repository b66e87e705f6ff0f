package ecs

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/phanxgames/willowmap"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []willowmap.MarkerEvent
	MarkerEventType.Subscribe(world, func(w donburi.World, e willowmap.MarkerEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(willowmap.MarkerEvent{Type: willowmap.EventFocusChanged, MarkerID: 7})
	sink.EmitEvent(willowmap.MarkerEvent{
		Type:      willowmap.EventMarkerDragged,
		MarkerID:  7,
		DragState: willowmap.DragEnding,
		Lat:       1.5,
		Lng:       -2.5,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	MarkerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != willowmap.EventFocusChanged || received[0].MarkerID != 7 {
		t.Errorf("event 0: %+v", received[0])
	}
	e1 := received[1]
	if e1.DragState != willowmap.DragEnding || e1.Lat != 1.5 || e1.Lng != -2.5 {
		t.Errorf("event 1: %+v", e1)
	}
}

// pointProjection places every marker at a fixed map pixel.
type pointProjection struct{}

func (pointProjection) ToPixels(s2.LatLng) willowmap.Vec2 { return willowmap.Vec2{X: 50, Y: 50} }
func (pointProjection) FromPixels(x, y float64) s2.LatLng { return s2.LatLngFromDegrees(y/10, x/10) }
func (pointProjection) ScreenBounds() willowmap.Rect      { return willowmap.Rect{Width: 100, Height: 100} }
func (pointProjection) Scale() float64                    { return 1 }
func (pointProjection) Rotation() float64                 { return 0 }

func TestDonburiSink_OverlayEvents(t *testing.T) {
	world := donburi.NewWorld()

	icon := willowmap.NewIcon("pin", 10, 10, willowmap.ColorWhite)
	m := willowmap.NewMarker("m", s2.LatLngFromDegrees(0, 0), icon)
	o := willowmap.NewOverlay(willowmap.SliceSource{m}, willowmap.DefaultConfig())
	o.SetEventSink(NewDonburiSink(world))
	o.Populate()

	var types []willowmap.MarkerEventType
	var states []willowmap.DragState
	MarkerEventType.Subscribe(world, func(w donburi.World, e willowmap.MarkerEvent) {
		types = append(types, e.Type)
		states = append(states, e.DragState)
	})

	o.SetFocus(m)
	o.Draw(willowmap.NewRecorder(), willowmap.Snapshot(pointProjection{}), false)
	o.SetDragging(m, willowmap.Vec2{})
	o.CancelDrag()
	MarkerEventType.ProcessEvents(world)

	want := []willowmap.MarkerEventType{
		willowmap.EventFocusChanged,
		willowmap.EventMarkerDragged,
		willowmap.EventMarkerDragged,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d events, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d type = %v, want %v", i, types[i], want[i])
		}
	}
	if states[1] != willowmap.DragStarting || states[2] != willowmap.DragCanceling {
		t.Errorf("drag states = %v", states[1:])
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	var sink willowmap.EventSink = NewDonburiSink(donburi.NewWorld())
	_ = sink // compile-time interface check
}
