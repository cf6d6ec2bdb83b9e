package core

import (
	"fmt"
	"testing"

	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/ecs"
	"github.com/go-drift/ecstree/pkg/errors"
)

// recorder collects callbacks from test elements. Elements hold a pointer to
// it, so updates that only share the recorder compare as equal.
type recorder struct {
	log    []string
	awakes map[string]int
	sleeps map[string]int
	builds map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		awakes: make(map[string]int),
		sleeps: make(map[string]int),
		builds: make(map[string]int),
	}
}

func (r *recorder) box(name string) box {
	return box{Name: name, Rec: r}
}

// dynamic returns a box whose children come from kids at build time.
func (r *recorder) dynamic(name string, kids *Spec) box {
	return box{Name: name, Rec: r, Kids: func() Spec { return *kids }}
}

type fanout []Message

// box places its declared children by reference unless Kids is set.
type box struct {
	Name string
	Rec  *recorder
	Kids func() Spec
}

func (box) CreateState() State[box] { return &boxState{} }

type boxState struct {
	StateBase
	value int
}

func (s *boxState) Awake(el box, ctx *Context) { el.Rec.awakes[el.Name]++ }

func (s *boxState) Sleep(el box, ctx *Context) { el.Rec.sleeps[el.Name]++ }

func (s *boxState) Build(el box, children ChildrenView, ctx *Context) Spec {
	el.Rec.builds[el.Name]++
	if el.Kids != nil {
		return el.Kids()
	}
	return children.Refs()
}

func (s *boxState) OnMessage(el box, payload any, ctx *Context) (bool, bool) {
	switch p := payload.(type) {
	case int:
		s.value += p
		el.Rec.log = append(el.Rec.log, fmt.Sprintf("%s:%d", el.Name, p))
		return true, true
	case fanout:
		el.Rec.log = append(el.Rec.log, el.Name+":fanout")
		for _, msg := range p {
			ctx.Send(msg)
		}
		return false, true
	}
	return false, false
}

type leaf struct {
	Text string
}

func (leaf) CreateState() State[leaf] { return &leafState{} }

type leafState struct {
	StateBase
	builds int
}

func (s *leafState) Build(el leaf, children ChildrenView, ctx *Context) Spec {
	s.builds++
	return Spec{}
}

type keyed struct {
	ID    int
	Label string
}

func (k keyed) Key() any { return k.ID }

func (keyed) CreateState() State[keyed] { return &keyedState{} }

type keyedState struct {
	updates int
}

func (s *keyedState) DidUpdateElement(old, next keyed, ctx *Context) bool {
	s.updates++
	return old.Label != next.Label
}

func (s *keyedState) Build(el keyed, children ChildrenView, ctx *Context) Spec {
	return Spec{}
}

// captureHandler records diagnostics instead of logging them.
type captureHandler struct {
	errors.LogHandler
	errs     []*errors.ReconcileError
	messages []*errors.MessageError
}

func (h *captureHandler) HandleError(err *errors.ReconcileError) {
	h.errs = append(h.errs, err)
}

func (h *captureHandler) HandleMessageError(err *errors.MessageError) {
	h.messages = append(h.messages, err)
}

func newTestHierarchy(t *testing.T) (*Hierarchy, *captureHandler) {
	t.Helper()
	handler := &captureHandler{}
	errors.SetHandler(handler)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return NewHierarchy(ecs.NewStore(donburi.NewWorld())), handler
}

func stateOf[S any](t *testing.T, h *Hierarchy, e ecs.Entity) S {
	t.Helper()
	node := h.Node(e)
	if node == nil {
		t.Fatalf("entity %v is not mounted", e)
	}
	s, ok := node.Instance().State().(S)
	if !ok {
		t.Fatalf("entity %v has state %T", e, node.Instance().State())
	}
	return s
}

func countNodes(h *Hierarchy) int {
	n := 0
	NodeComponent.Each(h.Store().World(), func(*donburi.Entry) { n++ })
	return n
}

func equalEntities(a, b []ecs.Entity) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
