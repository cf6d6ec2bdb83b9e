package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleKind identifies what happened to a mounted entity.
type LifecycleKind int

const (
	// Mounted means a new instance was attached to the entity.
	Mounted LifecycleKind = iota + 1
	// Replaced means the entity kept its id but its instance was rebuilt
	// from an element of a different type.
	Replaced
	// Unmounted means the instance was put to sleep and the entity deleted.
	Unmounted
)

func (k LifecycleKind) String() string {
	switch k {
	case Mounted:
		return "mounted"
	case Replaced:
		return "replaced"
	case Unmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// LifecycleEvent describes a change to the mounted state of an entity.
type LifecycleEvent struct {
	Kind   LifecycleKind
	Entity Entity
	// Element is the Go type name of the element involved.
	Element string
}

// LifecycleEventType is the Donburi event type for lifecycle events.
var LifecycleEventType = events.NewEventType[LifecycleEvent]()

// Publish queues a lifecycle event on the world.
func Publish(world donburi.World, ev LifecycleEvent) {
	LifecycleEventType.Publish(world, ev)
}
