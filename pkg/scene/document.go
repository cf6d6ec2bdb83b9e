// Package scene loads declarative tree documents from YAML or TOML and mounts
// them onto a core.Hierarchy.
//
// A document lists root nodes and, optionally, detached nodes. Detached nodes
// are mounted outside the roots and may be placed anywhere in the tree with a
// ref entry naming them:
//
//	detached:
//	  - kind: panel
//	    name: shared
//	roots:
//	  - kind: window
//	    name: main
//	    children:
//	      - kind: label
//	        name: title
//	        props: {text: Hello}
//	      - ref: shared
package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNode is returned for nodes that are neither an element nor a ref.
	ErrInvalidNode = errors.New("invalid node")
	// ErrUnknownRef is returned when a ref names no earlier detached node.
	ErrUnknownRef = errors.New("unknown ref")
)

// Document is the decoded form of a scene file.
type Document struct {
	Roots    []NodeDoc `yaml:"roots" toml:"roots"`
	Detached []NodeDoc `yaml:"detached,omitempty" toml:"detached,omitempty"`
}

// NodeDoc describes one node. Either Kind or Ref is set.
type NodeDoc struct {
	Kind     string            `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Name     string            `yaml:"name,omitempty" toml:"name,omitempty"`
	Props    map[string]string `yaml:"props,omitempty" toml:"props,omitempty"`
	Ref      string            `yaml:"ref,omitempty" toml:"ref,omitempty"`
	Children []NodeDoc         `yaml:"children,omitempty" toml:"children,omitempty"`
}

// IsRef reports whether the node places a detached node.
func (n NodeDoc) IsRef() bool {
	return n.Ref != ""
}

// Validate checks the document's structure. Refs are resolved in order:
// a ref may only name a detached node declared before it.
func (d *Document) Validate() error {
	names := make(map[string]bool, len(d.Detached))
	for i, node := range d.Detached {
		path := fmt.Sprintf("detached[%d]", i)
		if node.IsRef() {
			return fmt.Errorf("%s: %w: detached nodes cannot be refs", path, ErrInvalidNode)
		}
		if node.Name == "" {
			return fmt.Errorf("%s: %w: detached nodes need a name", path, ErrInvalidNode)
		}
		if names[node.Name] {
			return fmt.Errorf("%s: %w: duplicate detached name %q", path, ErrInvalidNode, node.Name)
		}
		if err := validateNode(node, path, names); err != nil {
			return err
		}
		names[node.Name] = true
	}
	for i, node := range d.Roots {
		path := fmt.Sprintf("roots[%d]", i)
		if node.IsRef() {
			return fmt.Errorf("%s: %w: roots cannot be refs", path, ErrInvalidNode)
		}
		if err := validateNode(node, path, names); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(node NodeDoc, path string, names map[string]bool) error {
	switch {
	case node.IsRef() && (node.Kind != "" || len(node.Children) > 0 || len(node.Props) > 0):
		return fmt.Errorf("%s: %w: ref %q cannot carry kind, props, or children", path, ErrInvalidNode, node.Ref)
	case node.IsRef():
		if !names[node.Ref] {
			return fmt.Errorf("%s: %w %q", path, ErrUnknownRef, node.Ref)
		}
		return nil
	case node.Kind == "":
		return fmt.Errorf("%s: %w: missing kind", path, ErrInvalidNode)
	}
	for i, child := range node.Children {
		if err := validateNode(child, fmt.Sprintf("%s.children[%d]", path, i), names); err != nil {
			return err
		}
	}
	return nil
}
