package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
)

// Entity identifies an entity in the store.
type Entity = donburi.Entity

// Null is the zero entity. It is never returned by CreateEntity.
var Null = donburi.Null

// liveTag is attached to every entity created by a Store.
var liveTag = donburi.NewTag()

// Store is the entity/component store backing a hierarchy.
// It is not safe for concurrent use.
type Store struct {
	world donburi.World
}

// NewStore creates a Store backed by a Donburi world.
func NewStore(world donburi.World) *Store {
	if world == nil {
		world = donburi.NewWorld()
	}
	return &Store{world: world}
}

// World returns the underlying Donburi world.
func (s *Store) World() donburi.World {
	return s.world
}

// CreateEntity allocates a new, component-less entity.
func (s *Store) CreateEntity() Entity {
	return s.world.Create(liveTag)
}

// DeleteEntity removes an entity and all of its components.
// Returns false if the entity was already dead.
func (s *Store) DeleteEntity(e Entity) bool {
	if !s.Alive(e) {
		return false
	}
	s.world.Remove(e)
	return true
}

// Alive reports whether the entity exists.
func (s *Store) Alive(e Entity) bool {
	if e == Null {
		return false
	}
	return s.world.Valid(e)
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return s.world.Len()
}

// entry returns the entry for a live entity, or nil.
func (s *Store) entry(e Entity) *donburi.Entry {
	if !s.Alive(e) {
		return nil
	}
	return s.world.Entry(e)
}

// Has reports whether a live entity carries the given component.
func (s *Store) Has(e Entity, ctype component.IComponentType) bool {
	entry := s.entry(e)
	return entry != nil && entry.HasComponent(ctype)
}

// Get returns a pointer to the component value stored on e.
// The pointer is only valid until the entity's component set changes.
func Get[T any](s *Store, e Entity, ctype *donburi.ComponentType[T]) (*T, bool) {
	entry := s.entry(e)
	if entry == nil || !entry.HasComponent(ctype) {
		return nil, false
	}
	return ctype.Get(entry), true
}

// Set stores value on e, adding the component if needed.
// Returns false if the entity is dead.
func Set[T any](s *Store, e Entity, ctype *donburi.ComponentType[T], value T) bool {
	entry := s.entry(e)
	if entry == nil {
		return false
	}
	if !entry.HasComponent(ctype) {
		entry.AddComponent(ctype)
	}
	ctype.SetValue(entry, value)
	return true
}

// Remove detaches a component from e. Removing a missing component, or a
// component of a dead entity, is a no-op.
func Remove(s *Store, e Entity, ctype component.IComponentType) {
	entry := s.entry(e)
	if entry == nil || !entry.HasComponent(ctype) {
		return
	}
	entry.RemoveComponent(ctype)
}
