// Package willowmap draws interactive markers above a slippy map and routes
// pointer input to them.
//
// A host supplies a [Projection] (geographic position to map pixels and back)
// and a [Surface] (a float32 canvas with a save/restore transform stack). Each
// frame the host captures a [Viewport] with [Snapshot] and calls
// [Overlay.Draw]. Hit tests and drags resolve against the same snapshot, so
// culling, drawing and input never disagree about where a marker is.
//
// # Quick start
//
//	o := willowmap.NewOverlay(willowmap.SliceSource{marker}, willowmap.DefaultConfig())
//	o.Populate()
//	mapView := webmercator.New(center, 13, 800, 600)
//	session := willowmap.NewSession(o, mapView)
//	session.Pan = mapView.Pan
//
//	// every frame
//	session.Update(pressed, x, y, dt)
//	session.Draw(surface)
//
// The ebitenhost and termsurface packages provide ready-made hosts, and
// webmercator provides a spherical Mercator [Projection].
//
// # Precision
//
// Map pixels at high zoom exceed 10^7, well past float32 precision. The
// overlay draws through a [SafeCanvas], which shifts every coordinate by the
// viewport's integer origin in float64 before it reaches the Surface. The
// [Recorder] surface keeps its matrices in float32 so tests can observe the
// difference.
//
// # Draw order and hits
//
// Background markers draw from the last index to the first, so index 0 ends
// up on top. The focused marker draws after them and the dragged marker last,
// enlarged by [Config.DragScale] and never culled. [Overlay.HitTest] walks the
// markers of the last frame topmost first and tests the upper half of each
// marker's drawing bounds (see [HitBounds]).
//
// # Input
//
// [GestureDetector] turns raw pointer samples into taps, long presses and
// moves. [Router] focuses tapped markers and drives the drag state machine:
// none, starting, dragging, then ending (position committed) or canceling
// (position rolled back). Focus changes are queued and delivered to
// [Overlay.OnFocusChanged] on the next main-pass draw.
//
// Input can be scripted for tests with the Inject methods on [Session] or a
// JSON script loaded by [LoadScript].
//
// # Integration
//
// Metrics go through the global OpenTelemetry meter. Logging uses zerolog;
// the default logger discards output. An [EventSink] receives focus, tap and
// drag events; the ecs module adapts it to [Donburi].
//
// [Donburi]: https://github.com/yohamta/donburi
package willowmap
