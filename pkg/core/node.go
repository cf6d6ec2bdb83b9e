package core

import (
	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/ecs"
)

// Node is the component attached to every mounted entity. Its presence is the
// entity's "mounted" flag.
type Node struct {
	instance     Instance
	needsBuild   bool
	specChildren Children
	realChildren Children
}

// Instance returns the mounted instance.
func (n *Node) Instance() Instance {
	return n.instance
}

// NeedsBuild reports whether the instance will be rebuilt on the next visit.
func (n *Node) NeedsBuild() bool {
	return n.needsBuild
}

// SpecChildren returns the children declared inline with the element.
func (n *Node) SpecChildren() ChildrenView {
	return ChildrenView{c: &n.specChildren}
}

// RealChildren returns the children realized by the last build.
func (n *Node) RealChildren() ChildrenView {
	return ChildrenView{c: &n.realChildren}
}

// NodeRef is the stored form of a Node. The Node lives on the heap so pointers
// stay valid while the entity's component set changes.
type NodeRef struct {
	Node *Node
}

// NodeComponent is the Donburi component type holding mounted nodes.
var NodeComponent = donburi.NewComponentType[NodeRef]()

func nodeOf(store *ecs.Store, e ecs.Entity) *Node {
	ref, ok := ecs.Get(store, e, NodeComponent)
	if !ok {
		return nil
	}
	return ref.Node
}
