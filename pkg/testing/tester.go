package testing

import (
	"slices"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
)

// Tester drives a Hierarchy over a fresh Donburi world.
type Tester struct {
	world     donburi.World
	store     *ecs.Store
	hierarchy *core.Hierarchy
	events    []ecs.LifecycleEvent
}

// NewTester creates a tester with an empty world.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	world := donburi.NewWorld()
	t := &Tester{
		world: world,
		store: ecs.NewStore(world),
	}
	t.hierarchy = core.NewHierarchy(t.store)
	t.hierarchy.PublishLifecycle = true
	ecs.LifecycleEventType.Subscribe(world, func(_ donburi.World, ev ecs.LifecycleEvent) {
		t.events = append(t.events, ev)
	})
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup removes every root, putting all owned instances to sleep.
func (t *Tester) Cleanup() {
	for _, root := range slices.Clone(t.hierarchy.Roots()) {
		t.hierarchy.RemoveRoot(root)
	}
	t.collect()
}

// Hierarchy returns the hierarchy under test.
func (t *Tester) Hierarchy() *core.Hierarchy {
	return t.hierarchy
}

// Store returns the backing store.
func (t *Tester) Store() *ecs.Store {
	return t.store
}

// Mount adds an Element spec as a new root. Call Pump to build it.
func (t *Tester) Mount(spec core.Spec) ecs.Entity {
	e := t.hierarchy.AddRoot(spec)
	t.collect()
	return e
}

// Detached mounts an Element spec that is not a root, for use as an
// EntityRef target.
func (t *Tester) Detached(spec core.Spec) ecs.Entity {
	e := t.hierarchy.Mount(spec)
	t.collect()
	return e
}

// Pump runs one Build and collects the lifecycle events it produced.
func (t *Tester) Pump() {
	t.hierarchy.Build()
	t.collect()
}

// PumpN runs n Builds.
func (t *Tester) PumpN(n int) {
	for range n {
		t.Pump()
	}
}

// Send queues a message for the next Pump.
func (t *Tester) Send(recipient ecs.Entity, payload any) {
	t.hierarchy.Send(core.Message{Recipient: recipient, Payload: payload})
}

// Sorted returns a copy of the last traversal order.
func (t *Tester) Sorted() []ecs.Entity {
	return slices.Clone(t.hierarchy.Sorted())
}

// Alive reports whether e exists in the store.
func (t *Tester) Alive(e ecs.Entity) bool {
	return t.store.Alive(e)
}

// Mounted reports whether e carries a node.
func (t *Tester) Mounted(e ecs.Entity) bool {
	return t.hierarchy.Node(e) != nil
}

// Events returns the lifecycle events collected so far.
func (t *Tester) Events() []ecs.LifecycleEvent {
	return t.events
}

// Count returns how many collected events have the given kind.
func (t *Tester) Count(kind ecs.LifecycleKind) int {
	n := 0
	for _, ev := range t.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// ClearEvents forgets the collected lifecycle events.
func (t *Tester) ClearEvents() {
	t.events = t.events[:0]
}

// Find evaluates a finder against the realized tree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		entities: finder.Evaluate(t.hierarchy),
		finder:   finder,
	}
}

func (t *Tester) collect() {
	ecs.LifecycleEventType.ProcessEvents(t.world)
}

// StateOf returns the state of the instance mounted on e.
func StateOf[S any](t *Tester, e ecs.Entity) (S, bool) {
	var zero S
	node := t.hierarchy.Node(e)
	if node == nil {
		return zero, false
	}
	s, ok := node.Instance().State().(S)
	return s, ok
}

// ElementOf returns the element mounted on e.
func ElementOf[E any](t *Tester, e ecs.Entity) (E, bool) {
	var zero E
	node := t.hierarchy.Node(e)
	if node == nil {
		return zero, false
	}
	el, ok := node.Instance().Element().(E)
	return el, ok
}
