package core

import (
	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/ecs"
)

// UseComponent stores an auxiliary component on the state's entity and
// removes it again when the state sleeps. The entity itself survives a sleep
// when its element type changes, so components tied to the old state must
// not linger.
//
// Example:
//
//	func (s *spriteState) Awake(el Sprite, ctx *core.Context) {
//	    core.UseComponent(s, ctx, Transform, TransformData{X: el.X, Y: el.Y})
//	}
func UseComponent[T any](s stateBase, ctx *Context, ctype *donburi.ComponentType[T], value T) {
	if !SetComponent(ctx, ctype, value) {
		return
	}
	store, e := ctx.h.store, ctx.entity
	s.state().OnSleep(func() {
		ecs.Remove(store, e, ctype)
	})
}

// UseComposer returns a Composer addressed to the state's own entity.
//
// Example:
//
//	func (s *buttonState) Awake(el Button, ctx *core.Context) {
//	    s.onClick = core.UseComposer(ctx, func(c Click) Pressed { return Pressed{} })
//	}
func UseComposer[In, Out any](ctx *Context, transform func(In) Out) Composer[In] {
	return NewComposer(ctx.entity, transform)
}
