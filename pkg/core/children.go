package core

import (
	"slices"

	"github.com/go-drift/ecstree/pkg/ecs"
)

// Children is an ordered list of child entities. Each slot is either owned
// (created and destroyed by the reconciler on behalf of the parent) or a
// reference to an entity owned elsewhere.
//
// Reference marks are kept per slot, so the same entity moving between slots
// in one pass never loses its mark.
type Children struct {
	entities []ecs.Entity
	refs     []bool
}

// Len returns the number of slots.
func (c *Children) Len() int {
	return len(c.entities)
}

// At returns the entity at slot i.
func (c *Children) At(i int) ecs.Entity {
	return c.entities[i]
}

// IsReference reports whether slot i is borrowed rather than owned.
func (c *Children) IsReference(i int) bool {
	return c.refs[i]
}

// Entities returns a copy of the slot entities in order.
func (c *Children) Entities() []ecs.Entity {
	return slices.Clone(c.entities)
}

// References returns the referenced entities in slot order.
func (c *Children) References() []ecs.Entity {
	var out []ecs.Entity
	for i, e := range c.entities {
		if c.refs[i] {
			out = append(out, e)
		}
	}
	return out
}

func (c *Children) push(e ecs.Entity, ref bool) {
	c.entities = append(c.entities, e)
	c.refs = append(c.refs, ref)
}

func (c *Children) set(i int, e ecs.Entity, ref bool) {
	c.entities[i] = e
	c.refs[i] = ref
}

func (c *Children) truncate(n int) {
	clear(c.entities[n:])
	c.entities = c.entities[:n]
	c.refs = c.refs[:n]
}

// appendOwned appends the owned entities in slots [from:] to dst.
func (c *Children) appendOwned(dst []ecs.Entity, from int) []ecs.Entity {
	for i := from; i < len(c.entities); i++ {
		if !c.refs[i] {
			dst = append(dst, c.entities[i])
		}
	}
	return dst
}

// ChildrenView is a read-only view of a node's children.
type ChildrenView struct {
	c *Children
}

// Len returns the number of children.
func (v ChildrenView) Len() int {
	if v.c == nil {
		return 0
	}
	return v.c.Len()
}

// At returns the child at index i.
func (v ChildrenView) At(i int) ecs.Entity {
	return v.c.At(i)
}

// IsReference reports whether child i is borrowed.
func (v ChildrenView) IsReference(i int) bool {
	return v.c.IsReference(i)
}

// Entities returns a copy of the children in order.
func (v ChildrenView) Entities() []ecs.Entity {
	if v.c == nil {
		return nil
	}
	return v.c.Entities()
}

// Refs returns a list spec placing every child, in order, by reference.
func (v ChildrenView) Refs() Spec {
	n := v.Len()
	if n == 0 {
		return Spec{}
	}
	specs := make([]Spec, n)
	for i := range specs {
		specs[i] = Ref(v.c.entities[i])
	}
	return List(specs...)
}
