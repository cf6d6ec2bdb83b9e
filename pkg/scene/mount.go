package scene

import (
	"reflect"
	"slices"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
)

// Scene tracks the entities a document was mounted onto.
type Scene struct {
	Roots    []ecs.Entity
	Detached map[string]ecs.Entity

	docs map[string]NodeDoc
}

// Mount mounts doc onto h: detached nodes first, in order, then roots.
// Nothing is built until the next h.Build.
func Mount(h *core.Hierarchy, doc *Document) (*Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	sc := &Scene{
		Detached: make(map[string]ecs.Entity, len(doc.Detached)),
		docs:     make(map[string]NodeDoc, len(doc.Detached)),
	}
	for _, node := range doc.Detached {
		sc.Detached[node.Name] = h.Mount(sc.spec(node))
		sc.docs[node.Name] = node
	}
	for _, node := range doc.Roots {
		sc.Roots = append(sc.Roots, h.AddRoot(sc.spec(node)))
	}
	return sc, nil
}

// Apply moves a mounted scene to doc. Roots are updated positionally, with
// roots added or removed at the end when the count changes. Detached nodes
// are matched by name; a detached node whose declaration changed is mounted
// afresh and every ref to it is moved to the new entity.
func Apply(h *core.Hierarchy, sc *Scene, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	var stale []ecs.Entity
	detached := make(map[string]ecs.Entity, len(doc.Detached))
	docs := make(map[string]NodeDoc, len(doc.Detached))
	next := &Scene{Detached: detached, docs: docs}
	for _, node := range doc.Detached {
		old, ok := sc.Detached[node.Name]
		if ok && reflect.DeepEqual(sc.docs[node.Name], node) && !refsMoved(node, sc.Detached, detached) {
			detached[node.Name] = old
		} else {
			detached[node.Name] = h.Mount(next.spec(node))
		}
		docs[node.Name] = node
	}
	for name, e := range sc.Detached {
		if detached[name] != e {
			stale = append(stale, e)
		}
	}

	roots := sc.Roots
	for i, node := range doc.Roots {
		if i < len(roots) {
			h.UpdateRoot(roots[i], next.spec(node))
			continue
		}
		roots = append(roots, h.AddRoot(next.spec(node)))
	}
	for _, e := range roots[len(doc.Roots):] {
		h.RemoveRoot(e)
	}
	for _, e := range stale {
		h.Unmount(e)
	}

	sc.Roots = roots[:len(doc.Roots)]
	sc.Detached = detached
	sc.docs = docs
	sc.markMoved(h)
	return nil
}

// markMoved schedules a rebuild of every scene element whose declared
// children now hold different entities than the ones it last placed, so a
// remounted detached node or a slot turned into a ref replaces the old entity
// in the realized tree.
func (sc *Scene) markMoved(h *core.Hierarchy) {
	seen := make(map[ecs.Entity]bool)
	stack := slices.Clone(sc.Roots)
	for _, e := range sc.Detached {
		stack = append(stack, e)
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[e] {
			continue
		}
		seen[e] = true

		node := h.Node(e)
		if node == nil {
			continue
		}
		children := node.SpecChildren()
		if state, ok := node.Instance().State().(*elementState); ok && !state.placed(children) {
			h.MarkNeedsBuild(e)
		}
		stack = append(stack, children.Entities()...)
	}
}

func (sc *Scene) spec(node NodeDoc) core.Spec {
	if node.IsRef() {
		return core.Ref(sc.Detached[node.Ref])
	}
	children := make([]core.Spec, len(node.Children))
	for i, child := range node.Children {
		children[i] = sc.spec(child)
	}
	return core.Elem(Element{Kind: node.Kind, Name: node.Name, Props: node.Props}, children...)
}

// refsMoved reports whether any ref below node resolves to a different entity
// in after than in before.
func refsMoved(node NodeDoc, before, after map[string]ecs.Entity) bool {
	if node.IsRef() {
		return before[node.Ref] != after[node.Ref]
	}
	for _, child := range node.Children {
		if refsMoved(child, before, after) {
			return true
		}
	}
	return false
}
