// Package ecs provides ECS adapters for willowmap's marker events.
//
// The primary adapter is [NewDonburiSink], which bridges overlay focus, tap,
// and drag events into a [Donburi] world as typed events. Subscribe to
// [MarkerEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	overlay.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
