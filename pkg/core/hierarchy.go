package core

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/go-drift/ecstree/pkg/ecs"
	"github.com/go-drift/ecstree/pkg/errors"
)

// Stats holds cumulative reconciliation counters.
type Stats struct {
	Builds    int // Build calls
	Visited   int // entities appended to the traversal order
	Rebuilt   int // instance Build invocations
	Mounted   int // nodes created
	Replaced  int // instances replaced after a type mismatch
	Unmounted int // nodes removed
	Delivered int // messages accepted by an instance
	Dropped   int // messages without a recipient or rejected
}

type applyItem struct {
	entity ecs.Entity
	spec   Spec
}

// Hierarchy reconciles spec trees onto nodes stored in an ecs.Store.
//
// It is constructed once and driven by calling Build once per tick. A
// Hierarchy is not safe for concurrent use; only its MessageQueue may be
// written from other goroutines.
type Hierarchy struct {
	store *ecs.Store
	queue *MessageQueue

	roots  []ecs.Entity
	sorted []ecs.Entity

	buildStack  []ecs.Entity
	applyStack  []applyItem
	deleteStack []ecs.Entity
	flat        []Spec

	inbox      []Message
	nested     []Message
	delivering bool

	stats Stats

	// Logger receives per-build debug summaries. Defaults to a no-op logger.
	Logger zerolog.Logger

	// PublishLifecycle enables ecs.LifecycleEvent publishing on the store's
	// world. Subscribers must process events regularly.
	PublishLifecycle bool
}

// NewHierarchy creates a Hierarchy over store.
func NewHierarchy(store *ecs.Store) *Hierarchy {
	return &Hierarchy{
		store:  store,
		queue:  NewMessageQueue(),
		Logger: zerolog.Nop(),
	}
}

// Store returns the backing store.
func (h *Hierarchy) Store() *ecs.Store {
	return h.store
}

// Messages returns the queue producers send messages to.
func (h *Hierarchy) Messages() *MessageQueue {
	return h.queue
}

// Send enqueues a message for delivery on the next Build. It is safe to call
// from any goroutine. Element callbacks use Context.Send instead, which
// resolves messages sent during delivery before the next queued one.
func (h *Hierarchy) Send(msg Message) {
	h.queue.Send(msg)
}

// Roots returns the root entities. The slice must not be modified.
func (h *Hierarchy) Roots() []ecs.Entity {
	return h.roots
}

// Sorted returns the pre-order traversal produced by the last Build: every
// parent precedes its children, and siblings keep document order. The slice
// is reused by the next Build.
func (h *Hierarchy) Sorted() []ecs.Entity {
	return h.sorted
}

// Stats returns the cumulative counters.
func (h *Hierarchy) Stats() Stats {
	return h.stats
}

// Node returns the node mounted on e, or nil.
func (h *Hierarchy) Node(e ecs.Entity) *Node {
	return nodeOf(h.store, e)
}

// MarkNeedsBuild schedules e for rebuild on its next visit.
// Returns false if e is not mounted.
func (h *Hierarchy) MarkNeedsBuild(e ecs.Entity) bool {
	node := nodeOf(h.store, e)
	if node == nil {
		return false
	}
	node.needsBuild = true
	return true
}

// Mount creates a detached entity from an Element spec. The entity is not a
// root: it is only visited where an EntityRef places it, and it is never
// deleted by a parent that references it. Use Unmount to remove it.
func (h *Hierarchy) Mount(spec Spec) ecs.Entity {
	spec.Prototype()
	e := h.store.CreateEntity()
	h.applyStack = append(h.applyStack, applyItem{entity: e, spec: spec})
	h.apply()
	return e
}

// AddRoot mounts an Element spec as a new root.
func (h *Hierarchy) AddRoot(spec Spec) ecs.Entity {
	e := h.Mount(spec)
	h.roots = append(h.roots, e)
	return e
}

// UpdateRoot applies a new Element spec to an existing root, following the
// same in-place update or replace rules as any child slot.
func (h *Hierarchy) UpdateRoot(e ecs.Entity, spec Spec) {
	spec.Prototype()
	if !slices.Contains(h.roots, e) {
		panic(errors.Invariant("core.Hierarchy.UpdateRoot", "entity %s is not a root", entityLabel(e)))
	}
	h.applyStack = append(h.applyStack, applyItem{entity: e, spec: spec})
	h.apply()
	h.delete()
}

// RemoveRoot removes a root and deletes it with its owned descendants.
// Returns false if e is not a root.
func (h *Hierarchy) RemoveRoot(e ecs.Entity) bool {
	i := slices.Index(h.roots, e)
	if i < 0 {
		return false
	}
	h.roots = slices.Delete(h.roots, i, i+1)
	h.Unmount(e)
	return true
}

// Unmount deletes e and its owned descendants immediately.
func (h *Hierarchy) Unmount(e ecs.Entity) {
	h.deleteStack = append(h.deleteStack, e)
	h.delete()
}

// Build delivers pending messages, then walks the roots, rebuilding every
// node that needs it and reconciling its children, and finally deletes
// everything orphaned along the way.
func (h *Hierarchy) Build() {
	before := h.stats
	h.stats.Builds++

	h.DeliverMessages()

	h.sorted = h.sorted[:0]
	for i := len(h.roots) - 1; i >= 0; i-- {
		h.buildStack = append(h.buildStack, h.roots[i])
	}

	for len(h.buildStack) > 0 {
		last := len(h.buildStack) - 1
		e := h.buildStack[last]
		h.buildStack = h.buildStack[:last]
		h.sorted = append(h.sorted, e)
		h.stats.Visited++

		node := nodeOf(h.store, e)
		if node == nil {
			continue
		}
		ctx := h.context(e)
		node.instance.Awake(ctx)

		rebuilt := false
		if node.needsBuild {
			node.needsBuild = false
			spec := node.instance.Build(ChildrenView{c: &node.specChildren}, ctx)
			h.flat = spec.Flatten(h.flat[:0])
			h.pushApplyChildren(h.flat, &node.realChildren)
			clear(h.flat)
			h.flat = h.flat[:0]
			h.stats.Rebuilt++
			rebuilt = true
		}

		for i := node.realChildren.Len() - 1; i >= 0; i-- {
			h.buildStack = append(h.buildStack, node.realChildren.entities[i])
		}

		if rebuilt {
			h.apply()
		}
	}

	h.delete()

	h.Logger.Debug().
		Int("visited", h.stats.Visited-before.Visited).
		Int("rebuilt", h.stats.Rebuilt-before.Rebuilt).
		Int("mounted", h.stats.Mounted-before.Mounted).
		Int("replaced", h.stats.Replaced-before.Replaced).
		Int("unmounted", h.stats.Unmounted-before.Unmounted).
		Int("delivered", h.stats.Delivered-before.Delivered).
		Int("dropped", h.stats.Dropped-before.Dropped).
		Msg("build")
}

// pushApplyChildren reconciles specs against children slot by slot. Element
// slots are queued on the apply stack, displaced owned entities on the delete
// stack. Reports whether the number of children changed; reordering alone
// does not count as a change.
func (h *Hierarchy) pushApplyChildren(specs []Spec, children *Children) bool {
	oldLen := children.Len()
	newLen := len(specs)
	if newLen < oldLen {
		h.pushDeleteChildren(children, newLen)
	}

	for i, spec := range specs {
		if spec.kind == SpecEntityRef {
			if i < children.Len() {
				occupant := children.entities[i]
				if occupant != spec.ref && !children.refs[i] {
					h.deleteStack = append(h.deleteStack, occupant)
				}
				children.set(i, spec.ref, true)
			} else {
				children.push(spec.ref, true)
			}
			continue
		}

		var slot ecs.Entity
		switch {
		case i >= children.Len():
			slot = h.store.CreateEntity()
			children.push(slot, false)
		case children.refs[i]:
			slot = h.store.CreateEntity()
			children.set(i, slot, false)
		default:
			slot = children.entities[i]
		}
		h.applyStack = append(h.applyStack, applyItem{entity: slot, spec: spec})
	}

	return newLen != oldLen
}

// pushDeleteChildren queues the owned children in slots [from:] for deletion
// and truncates the list.
func (h *Hierarchy) pushDeleteChildren(children *Children, from int) {
	h.deleteStack = children.appendOwned(h.deleteStack, from)
	children.truncate(from)
}

// apply drains the apply stack, updating, replacing, or creating the
// instance for each queued slot and reconciling its inline children.
func (h *Hierarchy) apply() {
	for len(h.applyStack) > 0 {
		last := len(h.applyStack) - 1
		item := h.applyStack[last]
		h.applyStack[last] = applyItem{}
		h.applyStack = h.applyStack[:last]

		proto := item.spec.Prototype()
		ctx := h.context(item.entity)

		rebuild := false
		node := nodeOf(h.store, item.entity)
		if node != nil {
			var ok bool
			rebuild, ok = node.instance.ReplaceElement(proto.element, ctx)
			if !ok {
				previous := typeName(node.instance.Element())
				node.instance.Sleep(ctx)
				node.instance = proto.NewInstance(proto.element)
				rebuild = true
				h.stats.Replaced++
				errors.Report(errors.Replaced("core.Hierarchy.apply", entityLabel(item.entity), previous, typeName(proto.element)))
				h.publish(ecs.Replaced, item.entity, proto.element)
			}
		} else {
			node = &Node{instance: proto.NewInstance(proto.element), needsBuild: true}
			ecs.Set(h.store, item.entity, NodeComponent, NodeRef{Node: node})
			h.stats.Mounted++
			h.publish(ecs.Mounted, item.entity, proto.element)
		}

		for _, child := range proto.children {
			h.flat = child.Flatten(h.flat)
		}
		changed := h.pushApplyChildren(h.flat, &node.specChildren)
		clear(h.flat)
		h.flat = h.flat[:0]

		node.needsBuild = node.needsBuild || changed || rebuild
	}
}

// delete drains the delete stack. Each mounted entity is put to sleep and its
// owned children, declared and realized, are queued after it. Referenced
// children are left alone.
func (h *Hierarchy) delete() {
	for len(h.deleteStack) > 0 {
		last := len(h.deleteStack) - 1
		e := h.deleteStack[last]
		h.deleteStack = h.deleteStack[:last]

		if node := nodeOf(h.store, e); node != nil {
			node.instance.Sleep(h.context(e))
			h.deleteStack = node.specChildren.appendOwned(h.deleteStack, 0)
			h.deleteStack = node.realChildren.appendOwned(h.deleteStack, 0)
			ecs.Remove(h.store, e, NodeComponent)
			h.stats.Unmounted++
			h.publish(ecs.Unmounted, e, node.instance.Element())
		}
		h.store.DeleteEntity(e)
	}
}

func (h *Hierarchy) context(e ecs.Entity) *Context {
	return &Context{h: h, entity: e}
}

func (h *Hierarchy) publish(kind ecs.LifecycleKind, e ecs.Entity, element any) {
	if !h.PublishLifecycle {
		return
	}
	ecs.Publish(h.store.World(), ecs.LifecycleEvent{Kind: kind, Entity: e, Element: typeName(element)})
}
