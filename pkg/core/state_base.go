package core

import "github.com/go-drift/ecstree/pkg/ecs"

// stateBase is satisfied by any struct that embeds StateBase.
// Hooks accept stateBase so callers can pass s directly.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// StateBase provides common functionality for element states.
// Embed this struct in your state to gain rebuild scheduling and
// sleep-time cleanup:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
type StateBase struct {
	hierarchy *Hierarchy
	entity    ecs.Entity
	disposers []func()
	asleep    bool
}

// bind stores the owning hierarchy and entity. Called by the framework
// before any callback that receives a Context.
func (s *StateBase) bind(h *Hierarchy, e ecs.Entity) {
	s.hierarchy = h
	s.entity = e
}

// Entity returns the entity this state is mounted on, or ecs.Null before
// the first callback.
func (s *StateBase) Entity() ecs.Entity {
	return s.entity
}

// MarkNeedsBuild schedules a rebuild of this state's entity on the next
// traversal. A no-op once the state is asleep.
func (s *StateBase) MarkNeedsBuild() {
	if s.asleep || s.hierarchy == nil {
		return
	}
	s.hierarchy.MarkNeedsBuild(s.entity)
}

// SetState executes fn and schedules a rebuild.
// Safe to call after sleep (becomes a no-op).
func (s *StateBase) SetState(fn func()) {
	if s.asleep {
		return
	}
	if fn != nil {
		fn()
	}
	s.MarkNeedsBuild()
}

// OnSleep registers a cleanup function to run when the state is put to
// sleep. Returns a function that unregisters it.
func (s *StateBase) OnSleep(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	if s.asleep {
		cleanup()
		return func() {}
	}

	index := len(s.disposers)
	s.disposers = append(s.disposers, cleanup)

	return func() {
		if index < len(s.disposers) {
			s.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered cleanups in reverse order.
// Called automatically when the instance sleeps.
func (s *StateBase) RunDisposers() {
	if s.asleep {
		return
	}
	s.asleep = true

	for i := len(s.disposers) - 1; i >= 0; i-- {
		if s.disposers[i] != nil {
			s.disposers[i]()
		}
	}
	s.disposers = nil
}

// IsAsleep returns true once the state has been put to sleep.
func (s *StateBase) IsAsleep() bool {
	return s.asleep
}
