package core

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/go-drift/ecstree/pkg/ecs"
)

// Context is handed to element states during every callback. It gives
// read access to the store, a way to send messages, and control over the
// entity's own auxiliary components.
type Context struct {
	h      *Hierarchy
	entity ecs.Entity
}

// Entity returns the entity the callback is running for.
func (c *Context) Entity() ecs.Entity {
	return c.entity
}

// Store returns the entity/component store. Element code must only mutate
// its own entity, through SetComponent and RemoveComponent.
func (c *Context) Store() *ecs.Store {
	return c.h.store
}

// Node returns the node mounted on e, or nil.
func (c *Context) Node(e ecs.Entity) *Node {
	return nodeOf(c.h.store, e)
}

// Send enqueues a message. Messages sent while messages are being delivered
// are resolved before the next queued message.
func (c *Context) Send(msg Message) {
	c.h.send(msg)
}

// MarkNeedsBuild schedules a rebuild of the context's entity.
func (c *Context) MarkNeedsBuild() {
	c.h.MarkNeedsBuild(c.entity)
}

// SetComponent stores an auxiliary component on the context's entity.
func SetComponent[T any](ctx *Context, ctype *donburi.ComponentType[T], value T) bool {
	return ecs.Set(ctx.h.store, ctx.entity, ctype, value)
}

// GetComponent reads a component from any live entity.
func GetComponent[T any](ctx *Context, e ecs.Entity, ctype *donburi.ComponentType[T]) (*T, bool) {
	return ecs.Get(ctx.h.store, e, ctype)
}

// RemoveComponent removes an auxiliary component from the context's entity.
func RemoveComponent[T any](ctx *Context, ctype *donburi.ComponentType[T]) {
	ecs.Remove(ctx.h.store, ctx.entity, ctype)
}

type entityLabel ecs.Entity

func (e entityLabel) String() string {
	return fmt.Sprintf("#%d", ecs.Entity(e).Id())
}
