package core

import (
	"sync"

	"github.com/go-drift/ecstree/pkg/ecs"
	"github.com/go-drift/ecstree/pkg/errors"
)

// Message is an entity-addressed, type-erased payload.
type Message struct {
	Recipient ecs.Entity
	Payload   any
}

// Sender accepts messages for later delivery.
type Sender interface {
	Send(msg Message)
}

// MessageQueue is the hierarchy's inbox.
//
// Send may be called from any goroutine (input handlers, timers); messages are
// drained only by Hierarchy.DeliverMessages on the reconciler's goroutine.
type MessageQueue struct {
	mu      sync.Mutex
	pending []Message
}

// NewMessageQueue creates an empty queue.
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{pending: make([]Message, 0, 16)}
}

// Send appends a message to the back of the queue.
func (q *MessageQueue) Send(msg Message) {
	q.mu.Lock()
	q.pending = append(q.pending, msg)
	q.mu.Unlock()
}

// Len returns the number of queued messages.
func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// drain moves every queued message, in arrival order, onto dst.
func (q *MessageQueue) drain(dst []Message) []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	dst = append(dst, q.pending...)
	clear(q.pending)
	q.pending = q.pending[:0]
	return dst
}

// Composer builds messages for one recipient from a producer-side input type,
// so producers need not know the recipient's element type.
type Composer[In any] struct {
	recipient ecs.Entity
	compose   func(In) any
}

// NewComposer binds a recipient and a transform from In to the payload type
// the recipient expects.
func NewComposer[In, Out any](recipient ecs.Entity, transform func(In) Out) Composer[In] {
	return Composer[In]{
		recipient: recipient,
		compose:   func(in In) any { return transform(in) },
	}
}

// Recipient returns the bound entity.
func (c Composer[In]) Recipient() ecs.Entity {
	return c.recipient
}

// Valid reports whether the composer was created with NewComposer.
func (c Composer[In]) Valid() bool {
	return c.compose != nil
}

// Compose builds the message for in.
func (c Composer[In]) Compose(in In) Message {
	return Message{Recipient: c.recipient, Payload: c.compose(in)}
}

// Send composes a message for in and hands it to s.
func (c Composer[In]) Send(s Sender, in In) {
	if c.compose == nil {
		return
	}
	s.Send(c.Compose(in))
}

// send routes messages produced by element callbacks. During delivery they go
// on the nested stack so a handler's own messages resolve before the next
// queued one.
func (h *Hierarchy) send(msg Message) {
	if h.delivering {
		h.nested = append(h.nested, msg)
		return
	}
	h.queue.Send(msg)
}

// DeliverMessages drains the queue and dispatches every message to its
// recipient's instance. Undeliverable messages are dropped with a diagnostic.
// Messages sent by handlers during delivery are delivered before the next
// queued message, most recent first.
func (h *Hierarchy) DeliverMessages() {
	h.inbox = h.queue.drain(h.inbox[:0])
	if len(h.inbox) == 0 {
		return
	}
	h.delivering = true
	for _, msg := range h.inbox {
		h.nested = append(h.nested, msg)
		for len(h.nested) > 0 {
			last := len(h.nested) - 1
			next := h.nested[last]
			h.nested[last] = Message{}
			h.nested = h.nested[:last]
			h.deliver(next)
		}
	}
	h.delivering = false
	clear(h.inbox)
	h.inbox = h.inbox[:0]
}

func (h *Hierarchy) deliver(msg Message) {
	node := nodeOf(h.store, msg.Recipient)
	if node == nil {
		h.stats.Dropped++
		errors.ReportMessage(&errors.MessageError{
			Recipient: entityLabel(msg.Recipient),
			Payload:   typeName(msg.Payload),
			Reason:    errors.DropNoRecipient,
		})
		return
	}
	rebuild, ok := node.instance.OnMessage(msg.Payload, h.context(msg.Recipient))
	if !ok {
		h.stats.Dropped++
		errors.ReportMessage(&errors.MessageError{
			Recipient: entityLabel(msg.Recipient),
			Element:   typeName(node.instance.Element()),
			Payload:   typeName(msg.Payload),
			Reason:    errors.DropRejected,
		})
		return
	}
	h.stats.Delivered++
	if rebuild {
		node.needsBuild = true
	}
}
