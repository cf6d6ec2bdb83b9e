// Package ecs is the entity/component store used by the reconciler.
//
// A [Store] wraps a [Donburi] world. Every entity created through the store
// carries a small liveness tag, so entities can exist before any component is
// attached to them. Deleting an entity that is already gone is not an error.
//
// Lifecycle events (mount, replace, unmount) are published to
// [LifecycleEventType]; subscribe to it from ECS systems and call
// ProcessEvents to receive them:
//
//	ecs.LifecycleEventType.Subscribe(world, func(w donburi.World, ev ecs.LifecycleEvent) {
//	    // ...
//	})
//	ecs.LifecycleEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
