package willowmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type routerFixture struct {
	*overlayFixture
	r       *Router
	redraws int
}

func newRouterFixture(ms ...func(f *overlayFixture) *Marker) *routerFixture {
	f := newFixture()
	for _, mk := range ms {
		f.add(mk(f))
	}
	rf := &routerFixture{overlayFixture: f, r: NewRouter(f.o)}
	rf.r.RequestRedraw = func() { rf.redraws++ }
	f.draw()
	return rf
}

func (rf *routerFixture) send(kind PointerKind, x, y float64) bool {
	return rf.r.HandleEvent(PointerEvent{Kind: kind, X: x, Y: y}, rf.o.LastViewport())
}

func draggableAt(name string, x, y float64) func(f *overlayFixture) *Marker {
	return func(f *overlayFixture) *Marker {
		m := f.marker(name, x, y)
		m.Draggable = true
		return m
	}
}

func TestRouterTapFocuses(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	m := rf.o.Item(0)

	if !rf.send(PointerTap, 100, 85) {
		t.Error("tap on marker not consumed")
	}
	if rf.o.Focus() != m {
		t.Errorf("Focus = %v, want m", rf.o.Focus())
	}

	if rf.send(PointerTap, 500, 500) {
		t.Error("tap on empty map consumed")
	}
	if rf.o.Focus() != nil {
		t.Error("unhandled tap did not clear focus")
	}
}

func TestRouterTapPropagation(t *testing.T) {
	rf := newRouterFixture(
		func(f *overlayFixture) *Marker { return f.marker("top", 100, 100) },
		func(f *overlayFixture) *Marker { return f.marker("below", 100, 100) },
	)

	var offered []string
	rf.r.TapHandler = func(m *Marker) bool {
		offered = append(offered, m.Title)
		return m.Title == "below"
	}
	unhandled := 0
	rf.r.OnUnhandledTap = func(float64, float64) { unhandled++ }

	if !rf.send(PointerTap, 100, 85) {
		t.Error("tap accepted by lower marker not consumed")
	}
	if diff := cmp.Diff([]string{"top", "below"}, offered); diff != "" {
		t.Errorf("offer order (-want +got):\n%s", diff)
	}
	if unhandled != 0 {
		t.Error("unhandled callback fired for an accepted tap")
	}

	rf.r.TapHandler = func(*Marker) bool { return false }
	if rf.send(PointerTap, 100, 85) {
		t.Error("tap rejected by every handler was consumed")
	}
	if unhandled != 1 {
		t.Errorf("unhandled = %d, want 1", unhandled)
	}
}

func TestRouterLongPressDragCommit(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	m := rf.o.Item(0)

	var states []DragState
	rf.o.OnMarkerDragged(func(_ *Marker, s DragState) { states = append(states, s) })

	if !rf.send(PointerLongPress, 100, 85) {
		t.Fatal("long press on draggable marker not consumed")
	}
	if rf.o.Dragging() != m || rf.r.State() != DragStarting {
		t.Fatalf("dragging %v state %v", rf.o.Dragging(), rf.r.State())
	}
	if rf.o.DragOffset() != (Vec2{0, 15}) {
		t.Errorf("DragOffset = %v, want {0 15}", rf.o.DragOffset())
	}

	rf.send(PointerMove, 200, 185)
	if m.Position != rf.proj.at(200, 200) {
		t.Errorf("moved to %v, want the grab point offset", rf.proj.ToPixels(m.Position))
	}
	if rf.r.State() != DragDragging {
		t.Errorf("state = %v, want dragging", rf.r.State())
	}

	rf.send(PointerUp, 250, 185)
	if m.Position != rf.proj.at(250, 200) {
		t.Errorf("committed %v, want (250, 200)", rf.proj.ToPixels(m.Position))
	}
	if rf.o.Dragging() != nil || rf.r.State() != DragNone {
		t.Error("drag not cleared after up")
	}
	if rf.redraws != 2 {
		t.Errorf("redraws = %d, want 2", rf.redraws)
	}
	want := []DragState{DragStarting, DragDragging, DragEnding}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Errorf("states (-want +got):\n%s", diff)
	}
}

func TestRouterDragCancel(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	m := rf.o.Item(0)
	start := m.Position

	rf.send(PointerLongPress, 100, 85)
	rf.send(PointerMove, 300, 300)
	rf.send(PointerMove, 320, 310)
	if !rf.send(PointerCancel, 320, 310) {
		t.Error("cancel during drag not consumed")
	}
	if m.Position != start {
		t.Errorf("cancel left marker at %v", rf.proj.ToPixels(m.Position))
	}
	if rf.redraws != 3 {
		t.Errorf("redraws = %d, want 3", rf.redraws)
	}
}

func TestRouterSwallowsTapsWhileDragging(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	rf.send(PointerLongPress, 100, 85)

	if !rf.send(PointerTap, 500, 500) {
		t.Error("tap during drag not consumed")
	}
	if rf.o.Dragging() == nil {
		t.Error("tap ended the drag")
	}
	if rf.redraws != 0 {
		t.Errorf("redraws = %d, want 0", rf.redraws)
	}
}

func TestRouterLongPressNonDraggable(t *testing.T) {
	rf := newRouterFixture(func(f *overlayFixture) *Marker { return f.marker("m", 100, 100) })
	if rf.send(PointerLongPress, 100, 85) {
		t.Error("long press on fixed marker consumed")
	}
	if rf.o.Dragging() != nil {
		t.Error("fixed marker started dragging")
	}
}

func TestRouterIgnoresIdleMoves(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	for _, k := range []PointerKind{PointerDown, PointerMove, PointerUp, PointerCancel} {
		if rf.send(k, 100, 85) {
			t.Errorf("%v consumed with no drag", k)
		}
	}
}

func TestRouterOpensPopup(t *testing.T) {
	rf := newRouterFixture(func(f *overlayFixture) *Marker {
		m := f.marker("Cafe", 100, 100)
		m.Description = "Open late"
		return m
	})
	w := NewInfoWindow()
	rf.r.Popup = w

	rf.send(PointerTap, 100, 85)
	m := rf.o.Item(0)
	if !w.IsOpen() || w.Marker() != m || m.Popup != w {
		t.Fatal("tap did not open the popup on the marker")
	}
	if w.Title != "Cafe" || w.Body != "Open late" {
		t.Errorf("popup = %q / %q", w.Title, w.Body)
	}
}

func TestRouterPopupTap(t *testing.T) {
	rf := newRouterFixture(func(f *overlayFixture) *Marker { return f.marker("Cafe", 100, 100) })
	w := NewInfoWindow()
	w.Width, w.Height = 100, 40
	rf.r.Popup = w
	var tapped []*Marker
	rf.r.OnPopupTap = func(m *Marker) { tapped = append(tapped, m) }

	rf.send(PointerTap, 100, 85)
	w.Update(1)
	m := rf.o.Item(0)

	// The window spans (50, 30)-(150, 70), above the marker.
	if !rf.send(PointerTap, 100, 50) {
		t.Error("tap on the popup not consumed")
	}
	if len(tapped) != 1 || tapped[0] != m {
		t.Errorf("OnPopupTap got %v, want [Cafe]", titles(tapped))
	}
	if !w.IsOpen() || rf.o.Focus() != m {
		t.Error("tap on the popup closed it")
	}

	rf.r.OnPopupTap = nil
	if !rf.send(PointerTap, 60, 35) || !w.IsOpen() {
		t.Error("popup tap without a handler fell through")
	}

	if rf.send(PointerTap, 500, 500) {
		t.Error("tap on empty map consumed")
	}
	if w.IsOpen() {
		t.Error("tap off the popup left it open")
	}
}

func TestRouterViewToMapWithScale(t *testing.T) {
	rf := newRouterFixture(draggableAt("m", 100, 100))
	rf.proj.scale = 2
	rf.proj.bounds = Rect{Width: 400, Height: 300}
	rf.draw()

	// Map pixel (100, 95) is view pixel (200, 190) at scale 2.
	if !rf.send(PointerTap, 200, 190) {
		t.Error("scaled tap missed the marker")
	}
}
