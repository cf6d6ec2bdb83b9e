package scene

import (
	"maps"
	"slices"

	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/ecs"
)

// Props is the auxiliary component holding a scene node's properties.
type Props map[string]string

// PropsComponent is attached to every mounted scene element that has props.
var PropsComponent = donburi.NewComponentType[Props]()

// Element is the generic element a scene node mounts. Its realized children
// are exactly its declared children.
type Element struct {
	Kind  string
	Name  string
	Props map[string]string
}

// Key makes kind and name part of the element's identity: changing either
// replaces the mounted instance.
func (e Element) Key() any {
	return e.Kind + "/" + e.Name
}

func (Element) CreateState() core.State[Element] {
	return &elementState{}
}

type elementState struct {
	core.StateBase
	tracked bool
	// built holds the declared children placed by the last Build.
	built []ecs.Entity
}

func (s *elementState) Awake(el Element, ctx *core.Context) {
	s.setProps(el.Props, ctx)
}

func (s *elementState) DidUpdateElement(old, el Element, ctx *core.Context) bool {
	if !maps.Equal(old.Props, el.Props) {
		s.setProps(el.Props, ctx)
	}
	return false
}

func (s *elementState) Build(el Element, children core.ChildrenView, ctx *core.Context) core.Spec {
	s.built = children.Entities()
	return children.Refs()
}

// setProps mirrors props into PropsComponent. The component is removed when
// the state sleeps, whether it was set on mount or by a later update.
func (s *elementState) setProps(props map[string]string, ctx *core.Context) {
	if !s.tracked {
		s.tracked = true
		store, e := ctx.Store(), ctx.Entity()
		s.OnSleep(func() {
			ecs.Remove(store, e, PropsComponent)
		})
	}
	if len(props) == 0 {
		core.RemoveComponent(ctx, PropsComponent)
		return
	}
	core.SetComponent(ctx, PropsComponent, Props(maps.Clone(props)))
}

// placed reports whether the last Build placed exactly the given declared
// children. A slot can change entity without the count changing, which does
// not schedule a rebuild on its own.
func (s *elementState) placed(children core.ChildrenView) bool {
	return slices.Equal(s.built, children.Entities())
}
