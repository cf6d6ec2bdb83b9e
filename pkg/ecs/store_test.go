package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
)

type position struct {
	X, Y float64
}

var positionComponent = donburi.NewComponentType[position]()

func TestStore_CreateDelete(t *testing.T) {
	store := NewStore(donburi.NewWorld())

	e := store.CreateEntity()
	if !store.Alive(e) {
		t.Fatal("expected created entity to be alive")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 entity, got %d", store.Len())
	}

	if !store.DeleteEntity(e) {
		t.Error("expected first delete to report true")
	}
	if store.Alive(e) {
		t.Error("expected entity to be dead after delete")
	}
	if store.DeleteEntity(e) {
		t.Error("expected second delete to report false")
	}
}

func TestStore_NullIsNeverAlive(t *testing.T) {
	store := NewStore(nil)
	if store.Alive(Null) {
		t.Error("Null entity reported alive")
	}
	if store.DeleteEntity(Null) {
		t.Error("deleting Null reported true")
	}
}

func TestStore_Components(t *testing.T) {
	store := NewStore(donburi.NewWorld())
	e := store.CreateEntity()

	if _, ok := Get(store, e, positionComponent); ok {
		t.Fatal("expected no component on fresh entity")
	}

	if !Set(store, e, positionComponent, position{X: 3, Y: 4}) {
		t.Fatal("Set on live entity failed")
	}
	if !store.Has(e, positionComponent) {
		t.Fatal("expected Has to report the component")
	}
	p, ok := Get(store, e, positionComponent)
	if !ok || p.X != 3 || p.Y != 4 {
		t.Errorf("unexpected component value: %+v ok=%v", p, ok)
	}

	Set(store, e, positionComponent, position{X: 5})
	if p, _ := Get(store, e, positionComponent); p.X != 5 {
		t.Errorf("expected overwrite, got %+v", p)
	}

	Remove(store, e, positionComponent)
	if store.Has(e, positionComponent) {
		t.Error("expected component to be removed")
	}
	// Removing again is a no-op.
	Remove(store, e, positionComponent)
}

func TestStore_DeadEntityComponents(t *testing.T) {
	store := NewStore(donburi.NewWorld())
	e := store.CreateEntity()
	store.DeleteEntity(e)

	if Set(store, e, positionComponent, position{}) {
		t.Error("Set on dead entity should fail")
	}
	if _, ok := Get(store, e, positionComponent); ok {
		t.Error("Get on dead entity should report absent")
	}
	Remove(store, e, positionComponent)
}

func TestPublish_LifecycleEvents(t *testing.T) {
	world := donburi.NewWorld()
	store := NewStore(world)
	e := store.CreateEntity()

	var received []LifecycleEvent
	LifecycleEventType.Subscribe(world, func(w donburi.World, ev LifecycleEvent) {
		received = append(received, ev)
	})

	Publish(world, LifecycleEvent{Kind: Mounted, Entity: e, Element: "label"})
	Publish(world, LifecycleEvent{Kind: Unmounted, Entity: e, Element: "label"})
	LifecycleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != Mounted || received[1].Kind != Unmounted {
		t.Errorf("unexpected event order: %v, %v", received[0].Kind, received[1].Kind)
	}
	if received[0].Kind.String() != "mounted" {
		t.Errorf("unexpected kind string %q", received[0].Kind.String())
	}
}
