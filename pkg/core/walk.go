package core

import "github.com/go-drift/ecstree/pkg/ecs"

type walkItem struct {
	entity ecs.Entity
	depth  int
}

// Walk visits the realized tree in the same pre-order as Sorted, without
// building anything. depth is 0 for roots. Returning false from visit skips
// the entity's children.
func (h *Hierarchy) Walk(visit func(e ecs.Entity, depth int) bool) {
	stack := make([]walkItem, 0, len(h.roots))
	for i := len(h.roots) - 1; i >= 0; i-- {
		stack = append(stack, walkItem{entity: h.roots[i]})
	}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(item.entity, item.depth) {
			continue
		}
		node := nodeOf(h.store, item.entity)
		if node == nil {
			continue
		}
		for i := node.realChildren.Len() - 1; i >= 0; i-- {
			stack = append(stack, walkItem{entity: node.realChildren.entities[i], depth: item.depth + 1})
		}
	}
}
