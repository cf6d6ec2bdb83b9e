package core

import (
	"fmt"

	"github.com/go-drift/ecstree/pkg/ecs"
	"github.com/go-drift/ecstree/pkg/errors"
)

// SpecKind identifies the variant held by a Spec.
type SpecKind uint8

const (
	// SpecList is a flattening wrapper with no identity of its own.
	// The zero Spec is an empty list.
	SpecList SpecKind = iota
	// SpecElement mounts or updates an element at its position.
	SpecElement
	// SpecEntityRef places an externally owned entity at its position.
	SpecEntityRef
)

func (k SpecKind) String() string {
	switch k {
	case SpecList:
		return "list"
	case SpecElement:
		return "element"
	case SpecEntityRef:
		return "entity-ref"
	default:
		return fmt.Sprintf("SpecKind(%d)", uint8(k))
	}
}

// Spec is an ephemeral, declarative description of one child slot.
// Specs are produced fresh by every Build and are cheap to copy.
type Spec struct {
	kind  SpecKind
	list  []Spec
	proto *Prototype
	ref   ecs.Entity
}

// List groups specs. Nested lists are flattened when reconciled.
func List(specs ...Spec) Spec {
	return Spec{kind: SpecList, list: specs}
}

// Ref places an existing entity without taking ownership of it.
func Ref(e ecs.Entity) Spec {
	return Spec{kind: SpecEntityRef, ref: e}
}

// Elem wraps an element value and its inline child specs.
func Elem[E Element[E]](element E, children ...Spec) Spec {
	return Spec{kind: SpecElement, proto: newPrototype(element, children)}
}

// Kind returns the variant held by the spec.
func (s Spec) Kind() SpecKind {
	return s.kind
}

// Entity returns the referenced entity of an EntityRef spec, or ecs.Null.
func (s Spec) Entity() ecs.Entity {
	if s.kind != SpecEntityRef {
		return ecs.Null
	}
	return s.ref
}

// Prototype returns the element payload of an Element spec.
// Calling it on a List or EntityRef spec is a programming error and panics.
func (s Spec) Prototype() *Prototype {
	if s.kind != SpecElement || s.proto == nil {
		panic(errors.Invariant("core.Spec.Prototype", "cannot coerce %s spec into an element prototype", s.kind))
	}
	return s.proto
}

// Len returns the number of slots the spec occupies once flattened.
func (s Spec) Len() int {
	if s.kind != SpecList {
		return 1
	}
	n := 0
	for _, child := range s.list {
		n += child.Len()
	}
	return n
}

// Flatten appends the spec's slots to dst, expanding nested lists in order.
func (s Spec) Flatten(dst []Spec) []Spec {
	if s.kind != SpecList {
		return append(dst, s)
	}
	for _, child := range s.list {
		dst = child.Flatten(dst)
	}
	return dst
}
