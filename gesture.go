package willowmap

import (
	"math"
	"time"
)

const (
	defaultDeadZone          = 4.0 // pixels
	defaultLongPressDuration = 500 * time.Millisecond
)

// GestureDetector turns a raw pressed/position sample stream for one pointer
// into PointerEvents: down, move, up, confirmed taps, and long presses.
// The host feeds it once per tick.
type GestureDetector struct {
	// DeadZone is the movement in view pixels a press may drift and still
	// count as a tap or long press.
	DeadZone float64
	// LongPressDuration is how long a press must be held in place.
	LongPressDuration time.Duration

	down        bool
	startX      float64
	startY      float64
	lastX       float64
	lastY       float64
	held        time.Duration
	moved       bool
	longPressed bool

	events []PointerEvent
}

// NewGestureDetector returns a detector with default thresholds.
func NewGestureDetector() *GestureDetector {
	return &GestureDetector{
		DeadZone:          defaultDeadZone,
		LongPressDuration: defaultLongPressDuration,
	}
}

// Down reports whether the pointer is currently pressed.
func (g *GestureDetector) Down() bool {
	return g.down
}

// Last returns the most recent pointer position.
func (g *GestureDetector) Last() (x, y float64) {
	return g.lastX, g.lastY
}

// Step advances the detector by dt with the current sample and returns the
// events it produced. The returned slice is reused by the next call.
func (g *GestureDetector) Step(pressed bool, x, y float64, dt time.Duration) []PointerEvent {
	g.events = g.events[:0]

	switch {
	case pressed && !g.down:
		g.down = true
		g.startX, g.startY = x, y
		g.lastX, g.lastY = x, y
		g.held = 0
		g.moved = false
		g.longPressed = false
		g.emit(PointerDown, x, y)

	case pressed && g.down:
		g.held += dt
		if !g.moved && !g.longPressed {
			dx := x - g.startX
			dy := y - g.startY
			if math.Sqrt(dx*dx+dy*dy) > g.DeadZone {
				g.moved = true
			}
		}
		if x != g.lastX || y != g.lastY {
			if g.moved || g.longPressed {
				g.emit(PointerMove, x, y)
			}
			g.lastX, g.lastY = x, y
		}
		if !g.moved && !g.longPressed && g.held >= g.LongPressDuration {
			g.longPressed = true
			g.emit(PointerLongPress, g.startX, g.startY)
		}

	case !pressed && g.down:
		g.down = false
		g.emit(PointerUp, x, y)
		if !g.moved && !g.longPressed {
			g.emit(PointerTap, g.startX, g.startY)
		}
		g.lastX, g.lastY = x, y
	}
	return g.events
}

// Cancel aborts an in-progress press, emitting PointerCancel.
func (g *GestureDetector) Cancel() []PointerEvent {
	g.events = g.events[:0]
	if g.down {
		g.down = false
		g.emit(PointerCancel, g.lastX, g.lastY)
	}
	return g.events
}

func (g *GestureDetector) emit(kind PointerKind, x, y float64) {
	g.events = append(g.events, PointerEvent{Kind: kind, X: x, Y: y})
}
