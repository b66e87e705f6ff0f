package willowmap

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and cull metrics.
// Only populated when the overlay is in debug mode.
type debugStats struct {
	drawTime time.Duration
	total    int
	visible  int
	culled   int
	skipped  int
	dragged  bool
}

// debugLog writes the frame stats through the overlay logger.
func (o *Overlay) debugLog(stats debugStats) {
	if !o.debug {
		return
	}
	o.log.Debug().
		Dur("draw", stats.drawTime).
		Int("markers", stats.total).
		Int("visible", stats.visible).
		Int("culled", stats.culled).
		Int("skipped", stats.skipped).
		Bool("dragging", stats.dragged).
		Msg("overlay frame")
}

// debugCheckMember reports whether m may be used by op. A marker that is not
// part of the overlay panics in debug mode and is logged and ignored
// otherwise.
func (o *Overlay) debugCheckMember(m *Marker, op string) bool {
	if m == nil || o.members.Has(m) {
		return true
	}
	if o.debug {
		panic(fmt.Sprintf("willowmap debug: %s on marker %q (ID %d) not in overlay", op, m.Title, m.ID))
	}
	o.log.Warn().Str("op", op).Uint32("marker", m.ID).Msg("marker not in overlay; ignored")
	return false
}
