package core

import (
	"fmt"
	"reflect"
)

// Element is implemented by user-defined element values. E is the element's
// own concrete type, so a Counter element implements Element[Counter]:
//
//	type Counter struct{ Label string }
//
//	func (Counter) CreateState() core.State[Counter] { return &counterState{} }
//
// Elements are cheap, immutable descriptions. The state returned by
// CreateState lives as long as the element stays mounted at the same slot
// with the same type (and key, see below).
//
// An element may also implement Key() any. An update is only accepted in
// place when the new element has the same Go type and a deeply equal key;
// otherwise the mounted instance is put to sleep and replaced.
type Element[E any] interface {
	CreateState() State[E]
}

// State is the private, mutable half of a mounted element.
//
// Build returns the element's realized children. The children view holds the
// children declared inline with the element (see Elem); a container usually
// places them with children.Refs().
//
// States may implement any of the following optional hooks:
//
//	Awake(element E, ctx *Context)
//	Sleep(element E, ctx *Context)
//	DidUpdateElement(old, new E, ctx *Context) bool
//	OnMessage(element E, payload any, ctx *Context) (rebuild bool, ok bool)
//
// Without DidUpdateElement an update requests a rebuild whenever the old and
// new elements are not deeply equal. Without OnMessage every message is
// rejected.
type State[E any] interface {
	Build(element E, children ChildrenView, ctx *Context) Spec
}

// Instance is the type-erased live mount of one element. Instances are created
// from a Prototype and owned by a Node.
type Instance interface {
	// Awake is called before every traversal visit; it is a no-op when the
	// instance is already awake.
	Awake(ctx *Context)
	// Build returns the realized children spec.
	Build(children ChildrenView, ctx *Context) Spec
	// ReplaceElement updates the instance in place. ok is false when the
	// element's type (or key) does not match the mounted one.
	ReplaceElement(element any, ctx *Context) (rebuild bool, ok bool)
	// OnMessage delivers a payload. ok is false when it was rejected.
	OnMessage(payload any, ctx *Context) (rebuild bool, ok bool)
	// Sleep tears the instance down.
	Sleep(ctx *Context)
	// Element returns the current element value.
	Element() any
	// State returns the instance's private state.
	State() any
}

// Prototype is the erased payload of an Element spec.
type Prototype struct {
	element   any
	construct func(element any) Instance
	children  []Spec
}

func newPrototype[E Element[E]](element E, children []Spec) *Prototype {
	return &Prototype{
		element:   element,
		construct: newInstance[E],
		children:  children,
	}
}

// Element returns the element value.
func (p *Prototype) Element() any {
	return p.element
}

// Children returns the inline child specs as a list.
func (p *Prototype) Children() Spec {
	return List(p.children...)
}

// NewInstance constructs a fresh instance for element, which must have the
// prototype's concrete type.
func (p *Prototype) NewInstance(element any) Instance {
	return p.construct(element)
}

type instance[E Element[E]] struct {
	element E
	state   State[E]
	awake   bool
}

func newInstance[E Element[E]](element any) Instance {
	el := element.(E)
	return &instance[E]{element: el, state: el.CreateState()}
}

func (i *instance[E]) bind(ctx *Context) {
	if binder, ok := i.state.(stateBase); ok {
		binder.state().bind(ctx.h, ctx.entity)
	}
}

func (i *instance[E]) Awake(ctx *Context) {
	if i.awake {
		return
	}
	i.awake = true
	i.bind(ctx)
	if hook, ok := i.state.(interface{ Awake(E, *Context) }); ok {
		hook.Awake(i.element, ctx)
	}
}

func (i *instance[E]) Build(children ChildrenView, ctx *Context) Spec {
	return i.state.Build(i.element, children, ctx)
}

func (i *instance[E]) ReplaceElement(element any, ctx *Context) (bool, bool) {
	next, ok := element.(E)
	if !ok || !sameKey(i.element, next) {
		return false, false
	}
	i.bind(ctx)
	old := i.element
	i.element = next
	if hook, ok := i.state.(interface {
		DidUpdateElement(old, new E, ctx *Context) bool
	}); ok {
		return hook.DidUpdateElement(old, next, ctx), true
	}
	return !reflect.DeepEqual(old, next), true
}

func (i *instance[E]) OnMessage(payload any, ctx *Context) (bool, bool) {
	hook, ok := i.state.(interface {
		OnMessage(element E, payload any, ctx *Context) (bool, bool)
	})
	if !ok {
		return false, false
	}
	i.bind(ctx)
	return hook.OnMessage(i.element, payload, ctx)
}

func (i *instance[E]) Sleep(ctx *Context) {
	if i.awake {
		if hook, ok := i.state.(interface{ Sleep(E, *Context) }); ok {
			hook.Sleep(i.element, ctx)
		}
	}
	i.awake = false
	if binder, ok := i.state.(stateBase); ok {
		binder.state().RunDisposers()
	}
}

func (i *instance[E]) Element() any {
	return i.element
}

func (i *instance[E]) State() any {
	return i.state
}

func sameKey(a, b any) bool {
	return reflect.DeepEqual(keyOf(a), keyOf(b))
}

func keyOf(v any) any {
	if keyed, ok := v.(interface{ Key() any }); ok {
		return keyed.Key()
	}
	return nil
}

// HandleMessage downcasts payload to M and passes it to handle. It reports
// ok=false when the payload has a different type, matching the OnMessage
// contract:
//
//	func (s *counterState) OnMessage(el Counter, payload any, ctx *core.Context) (bool, bool) {
//	    return core.HandleMessage(payload, func(inc Increment) bool {
//	        s.count += int(inc)
//	        return true
//	    })
//	}
func HandleMessage[M any](payload any, handle func(M) bool) (rebuild bool, ok bool) {
	msg, ok := payload.(M)
	if !ok {
		return false, false
	}
	return handle(msg), true
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
