package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
)

// Finder locates entities in the realized tree.
type Finder interface {
	// Evaluate returns all matching entities in traversal order.
	Evaluate(h *core.Hierarchy) []ecs.Entity
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	entities []ecs.Entity
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() ecs.Entity {
	if len(r.entities) == 0 {
		panic(fmt.Sprintf("Finder found no entities: %s", r.description()))
	}
	return r.entities[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) ecs.Entity {
	if index < 0 || index >= len(r.entities) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.entities), r.description()))
	}
	return r.entities[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []ecs.Entity {
	return r.entities
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.entities)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.entities) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// typeFinder matches entities whose mounted element is of the given type.
type typeFinder struct {
	elementType reflect.Type
}

func (f *typeFinder) Evaluate(h *core.Hierarchy) []ecs.Entity {
	return collectMatches(h, func(_ ecs.Entity, node *core.Node) bool {
		return reflect.TypeOf(node.Instance().Element()) == f.elementType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.elementType)
}

// ByType returns a finder that matches entities whose element is type E.
func ByType[E any]() Finder {
	return &typeFinder{elementType: reflect.TypeFor[E]()}
}

// predicateFinder matches with a custom function.
type predicateFinder struct {
	match func(e ecs.Entity, node *core.Node) bool
	desc  string
}

func (f *predicateFinder) Evaluate(h *core.Hierarchy) []ecs.Entity {
	return collectMatches(h, f.match)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder using a custom match function.
func ByPredicate(desc string, match func(e ecs.Entity, node *core.Node) bool) Finder {
	return &predicateFinder{match: match, desc: desc}
}

// ByElement returns a finder matching elements of type E for which match
// returns true.
func ByElement[E any](match func(E) bool) Finder {
	return &predicateFinder{
		match: func(_ ecs.Entity, node *core.Node) bool {
			el, ok := node.Instance().Element().(E)
			return ok && match(el)
		},
		desc: fmt.Sprintf("ByElement(%s)", reflect.TypeFor[E]()),
	}
}

func collectMatches(h *core.Hierarchy, match func(ecs.Entity, *core.Node) bool) []ecs.Entity {
	var out []ecs.Entity
	h.Walk(func(e ecs.Entity, depth int) bool {
		if node := h.Node(e); node != nil && match(e, node) {
			out = append(out, e)
		}
		return true
	})
	return out
}
