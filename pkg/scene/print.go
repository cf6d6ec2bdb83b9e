package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
)

// PrintOptions controls Fprint output.
type PrintOptions struct {
	// HideIDs omits entity ids, which depend on allocation order.
	HideIDs bool
}

// Fprint writes the realized tree of h to w, one entity per line, indented
// two spaces per level:
//
//	window main #1
//	  label title #3
func Fprint(w io.Writer, h *core.Hierarchy, opts PrintOptions) error {
	var err error
	h.Walk(func(e ecs.Entity, depth int) bool {
		if err != nil {
			return false
		}
		line := strings.Repeat("  ", depth) + Describe(h.Node(e))
		if !opts.HideIDs {
			line += fmt.Sprintf(" #%d", e.Id())
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// Describe returns "kind name" for scene elements and the element's Go type
// for anything else.
func Describe(node *core.Node) string {
	if node == nil {
		return "<unmounted>"
	}
	switch el := node.Instance().Element().(type) {
	case Element:
		if el.Name == "" {
			return el.Kind
		}
		return el.Kind + " " + el.Name
	default:
		return fmt.Sprintf("%T", el)
	}
}
