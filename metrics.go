package willowmap

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/phanxgames/willowmap"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// overlayMetrics are recorded through the global OTel meter, which is a
// no-op unless the host installs a provider.
type overlayMetrics struct {
	frames  metric.Int64Counter
	visible metric.Int64Histogram
	drags   metric.Int64Counter
}

func newOverlayMetrics() overlayMetrics {
	m := meter()
	var om overlayMetrics
	var err error

	om.frames, err = m.Int64Counter(
		"willowmap.overlay.frames",
		metric.WithDescription("Overlay main-pass draws"),
	)
	if err != nil {
		om.frames = noop.Int64Counter{}
	}
	om.visible, err = m.Int64Histogram(
		"willowmap.overlay.visible",
		metric.WithDescription("Markers surviving the visibility cull per frame"),
	)
	if err != nil {
		om.visible = noop.Int64Histogram{}
	}
	om.drags, err = m.Int64Counter(
		"willowmap.overlay.drags",
		metric.WithDescription("Finished marker drags by outcome"),
	)
	if err != nil {
		om.drags = noop.Int64Counter{}
	}
	return om
}

func (om overlayMetrics) frame(visible int) {
	ctx := context.Background()
	om.frames.Add(ctx, 1)
	om.visible.Record(ctx, int64(visible))
}

func (om overlayMetrics) dragFinished(state DragState) {
	om.drags.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", state.String())))
}
