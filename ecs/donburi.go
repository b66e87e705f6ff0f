package ecs

import (
	"github.com/phanxgames/willowmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MarkerEventType is the Donburi event type for willowmap marker events.
// Subscribe to this in your ECS systems to receive focus, tap, and drag
// events.
var MarkerEventType = events.NewEventType[willowmap.MarkerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on MarkerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) willowmap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event willowmap.MarkerEvent) {
	MarkerEventType.Publish(s.world, event)
}
