package willowmap

// syntheticPointerEvent is one queued pointer sample in view pixels. Each
// sample is consumed by one Session.Update, exactly like a real one.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	cancel  bool
}

// InjectPress queues a pointer press at the given view coordinates.
func (s *Session) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a held-pointer sample at the given view coordinates.
// Use between InjectPress and InjectRelease.
func (s *Session) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release.
func (s *Session) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectCancel queues a gesture cancel, as when the host loses focus.
func (s *Session) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectTap queues a press and a release at the same point. Consumes two
// frames.
func (s *Session) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectLongPress queues a press held in place until the gesture detector
// reports a long press. The pointer stays down; follow with moves and a
// release or cancel.
func (s *Session) InjectLongPress(x, y float64) {
	s.InjectPress(x, y)
	for i := 0; i < s.holdFrames(); i++ {
		s.InjectMove(x, y)
	}
}

// InjectDrag queues a long press at (fromX, fromY), frames-2 interpolated
// moves, and a release at (toX, toY). Minimum frames is 2.
func (s *Session) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.InjectLongPress(fromX, fromY)
	s.injectMoves(fromX, fromY, toX, toY, frames)
	s.InjectRelease(toX, toY)
}

// InjectPan queues a plain press-move-release that pans the map.
func (s *Session) InjectPan(fromX, fromY, toX, toY float64, frames int) {
	s.InjectPress(fromX, fromY)
	s.injectMoves(fromX, fromY, toX, toY, frames)
	s.InjectRelease(toX, toY)
}

func (s *Session) injectMoves(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	// Land on the target while still pressed so the release adds no jump.
	s.InjectMove(toX, toY)
}

func (s *Session) holdFrames() int {
	tick := s.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return int(s.Gestures.LongPressDuration/tick) + 1
}

// Pending returns the number of queued injected samples.
func (s *Session) Pending() int {
	return len(s.injectQueue)
}

func (s *Session) popInjected() (syntheticPointerEvent, bool) {
	if len(s.injectQueue) == 0 {
		return syntheticPointerEvent{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return evt, true
}
