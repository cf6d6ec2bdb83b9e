// Package core reconciles declarative spec trees onto stateful nodes stored
// in an entity/component store.
//
// # Core Types
//
// Spec is an ephemeral description of one child slot: a List (flattened, no
// identity), an Element (mount or update an element here), or an EntityRef
// (place an entity owned elsewhere).
//
// Element is a user-defined value type; its State holds private, mutable
// data. Elem erases both into a Prototype carried by a Spec.
//
// Node is the component attached to every mounted entity. It owns one
// Instance and two Children lists: the children declared inline with the
// element (spec children) and the children realized by its last Build (real
// children).
//
// Hierarchy drives reconciliation. Call Build once per tick:
//
//	store := ecs.NewStore(donburi.NewWorld())
//	h := core.NewHierarchy(store)
//	h.AddRoot(core.Elem(App{}))
//	for running {
//	    h.Build()
//	    for _, e := range h.Sorted() {
//	        // layout, draw ...
//	    }
//	}
//
// # Writing Elements
//
//	type Panel struct{ Title string }
//
//	func (Panel) CreateState() core.State[Panel] { return &panelState{} }
//
//	type panelState struct {
//	    core.StateBase
//	    opened bool
//	}
//
//	func (s *panelState) Build(el Panel, children core.ChildrenView, ctx *core.Context) core.Spec {
//	    if !s.opened {
//	        return core.Elem(Label{Text: el.Title})
//	    }
//	    return core.List(core.Elem(Label{Text: el.Title}), children.Refs())
//	}
//
// Children declared inline, core.Elem(Panel{}, child1, child2), are owned by
// the panel's spec children. Placing them with children.Refs() realizes them
// without transferring ownership, so they survive when the panel stops
// showing them.
//
// # Ownership
//
// Owned children are created and destroyed by their parent's reconciliation.
// Referenced children are never deleted by the parent that references them,
// not even when the parent itself is deleted.
//
// # Messages
//
// Producers send messages to entities through the hierarchy's MessageQueue,
// which is safe for concurrent use. A Composer lets a producer build a
// message for an element without knowing its type:
//
//	click := core.NewComposer(button, func(ev ClickEvent) Pressed { return Pressed{} })
//	click.Send(h.Messages(), ev)
//
// Messages are delivered at the start of Build. A message addressed to an
// unmounted entity, or rejected by its instance, is dropped with a diagnostic
// reported through the errors package.
package core
