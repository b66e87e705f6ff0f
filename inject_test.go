package willowmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSession(ms ...func(f *overlayFixture) *Marker) (*Session, *overlayFixture) {
	f := newFixture()
	for _, mk := range ms {
		f.add(mk(f))
	}
	s := NewSession(f.o, f.proj)
	s.Draw(NewRecorder())
	return s, f
}

// runFrames advances the session n frames with the pointer up, drawing after
// each update like a host would.
func runFrames(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Update(false, 0, 0, DefaultTick)
		s.Draw(NewRecorder())
	}
}

func drain(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; s.Pending() > 0; i++ {
		if i > 1000 {
			t.Fatal("inject queue never drained")
		}
		runFrames(s, 1)
	}
}

func TestInjectTap(t *testing.T) {
	s, f := newTestSession(draggableAt("m", 100, 100))
	m := f.o.Item(0)

	s.InjectTap(100, 85)
	if s.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", s.Pending())
	}

	runFrames(s, 1)
	if s.Pending() != 1 {
		t.Fatalf("Pending = %d after press, want 1", s.Pending())
	}
	if f.o.Focus() != nil {
		t.Error("focus changed on the press frame")
	}

	runFrames(s, 1)
	if f.o.Focus() != m {
		t.Error("tap did not focus the marker")
	}
	if s.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", s.Frame())
	}
}

func TestInjectLongPressQueuesHoldFrames(t *testing.T) {
	s, _ := newTestSession()
	s.InjectLongPress(10, 10)
	// 500ms at 60Hz is just under 30 ticks, so one more sample is needed.
	if s.Pending() != 32 {
		t.Errorf("Pending = %d, want 32", s.Pending())
	}
}

func TestInjectDragCommits(t *testing.T) {
	s, f := newTestSession(draggableAt("m", 100, 100))
	m := f.o.Item(0)
	var states []DragState
	f.o.OnMarkerDragged(func(_ *Marker, st DragState) {
		if len(states) == 0 || states[len(states)-1] != st {
			states = append(states, st)
		}
	})
	panned := 0
	s.Pan = func(float64, float64) { panned++ }

	s.InjectDrag(100, 85, 200, 185, 5)
	drain(t, s)

	if m.Position != f.proj.at(200, 200) {
		t.Errorf("marker at %v, want (200, 200)", f.proj.ToPixels(m.Position))
	}
	want := []DragState{DragStarting, DragDragging, DragEnding}
	if diff := cmp.Diff(want, states); diff != "" {
		t.Errorf("states (-want +got):\n%s", diff)
	}
	if panned != 0 {
		t.Errorf("drag moves panned the map %d times", panned)
	}
}

func TestInjectCancelRollsBack(t *testing.T) {
	s, f := newTestSession(draggableAt("m", 100, 100))
	m := f.o.Item(0)
	start := m.Position

	s.InjectLongPress(100, 85)
	s.InjectMove(300, 300)
	drain(t, s)
	if f.o.Dragging() != m {
		t.Fatal("long press did not start a drag")
	}
	if m.Position == start {
		t.Fatal("move did not drag the marker")
	}

	s.InjectCancel()
	drain(t, s)
	if m.Position != start || f.o.Dragging() != nil {
		t.Error("cancel did not roll the drag back")
	}
}

func TestInjectPanMovesMap(t *testing.T) {
	s, _ := newTestSession()
	var dx, dy float64
	s.Pan = func(x, y float64) {
		dx += x
		dy += y
	}

	s.InjectPan(400, 300, 300, 250, 3)
	drain(t, s)
	if dx != -100 || dy != -50 {
		t.Errorf("panned (%v, %v), want (-100, -50)", dx, dy)
	}
}

func TestSessionRealPointer(t *testing.T) {
	s, f := newTestSession(draggableAt("m", 100, 100))
	s.Update(true, 100, 85, DefaultTick)
	s.Update(false, 100, 85, DefaultTick)
	if f.o.Focus() != f.o.Item(0) {
		t.Error("pointer tap did not focus the marker")
	}
	if s.Viewport().Bounds != f.proj.bounds {
		t.Errorf("Viewport = %v", s.Viewport().Bounds)
	}
}

func TestSessionInjectionOverridesPointer(t *testing.T) {
	s, f := newTestSession(draggableAt("m", 100, 100))
	s.InjectTap(100, 85)
	// The real pointer is pressed elsewhere; injected samples win.
	s.Update(true, 700, 500, DefaultTick)
	s.Update(true, 700, 500, DefaultTick)
	if f.o.Focus() != f.o.Item(0) {
		t.Error("injected tap lost to the real pointer")
	}
}
