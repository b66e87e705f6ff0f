package willowmap

import "time"

// DefaultTick is the frame duration assumed by injected input.
const DefaultTick = time.Second / 60

// Session is the host-independent frame loop: it turns pointer samples into
// gestures, routes them to the overlay's markers, pans the map with whatever
// the router does not consume, and draws the overlay once per frame.
//
// Hosts call Update from their update step with the raw pointer state and
// Draw from their draw step.
type Session struct {
	Overlay    *Overlay
	Router     *Router
	Gestures   *GestureDetector
	Projection Projection

	// Pan is called with view-pixel deltas for pointer moves the router did
	// not consume. Hosts move the map by the negative delta.
	Pan func(dx, dy float64)

	// Tick is the duration of one injected frame.
	Tick time.Duration

	lastX, lastY float64
	injectQueue  []syntheticPointerEvent
	runner       *ScriptRunner
	frame        int
}

// NewSession wires a router and gesture detector to o.
func NewSession(o *Overlay, proj Projection) *Session {
	return &Session{
		Overlay:    o,
		Router:     NewRouter(o),
		Gestures:   NewGestureDetector(),
		Projection: proj,
		Tick:       DefaultTick,
	}
}

// Frame returns the number of completed Update calls.
func (s *Session) Frame() int {
	return s.frame
}

// Viewport returns the viewport input is resolved against: the one the
// overlay last drew.
func (s *Session) Viewport() Viewport {
	return s.Overlay.LastViewport()
}

// Update advances one frame. Injected input, when queued, replaces the real
// pointer sample for this frame. Real samples are ignored while a script
// runner is attached and not done.
func (s *Session) Update(pressed bool, x, y float64, dt time.Duration) {
	s.frame++
	if s.runner != nil {
		s.runner.step(s)
	}

	evt, ok := s.popInjected()
	switch {
	case ok && evt.cancel:
		s.route(s.Gestures.Cancel())
		return
	case ok:
		pressed, x, y, dt = evt.pressed, evt.x, evt.y, s.Tick
	case s.runner != nil && !s.runner.Done():
		return
	}
	s.route(s.Gestures.Step(pressed, x, y, dt))
}

func (s *Session) route(events []PointerEvent) {
	vp := s.Viewport()
	for _, ev := range events {
		consumed := s.Router.HandleEvent(ev, vp)
		switch ev.Kind {
		case PointerDown:
			s.lastX, s.lastY = ev.X, ev.Y
		case PointerMove:
			if !consumed && s.Pan != nil {
				s.Pan(ev.X-s.lastX, ev.Y-s.lastY)
			}
			s.lastX, s.lastY = ev.X, ev.Y
		}
	}
}

// Draw snapshots the projection and draws the overlay onto surface.
func (s *Session) Draw(surface Surface) {
	s.Overlay.Draw(surface, Snapshot(s.Projection), false)
}
