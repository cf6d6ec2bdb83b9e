package core

import "testing"

type pressed struct {
	n int
}

type button struct{}

func (button) CreateState() State[button] { return &buttonState{} }

type buttonState struct {
	StateBase
	press  Composer[click]
	total  int
	builds int
}

func (s *buttonState) Awake(el button, ctx *Context) {
	s.press = UseComposer(ctx, func(c click) pressed { return pressed{n: c.Count} })
}

func (s *buttonState) OnMessage(el button, payload any, ctx *Context) (bool, bool) {
	return HandleMessage(payload, func(p pressed) bool {
		s.total += p.n
		return true
	})
}

func (s *buttonState) Build(el button, children ChildrenView, ctx *Context) Spec {
	s.builds++
	return Spec{}
}

func TestUseComposer_AddressesOwnEntity(t *testing.T) {
	h, dropped := newTestHierarchy(t)
	e := h.AddRoot(Elem(button{}))
	h.Build()

	state := stateOf[*buttonState](t, h, e)
	if state.press.Recipient() != e {
		t.Fatalf("expected composer addressed to %v, got %v", e, state.press.Recipient())
	}

	state.press.Send(h, click{Count: 3})
	state.press.Send(h, click{Count: 4})
	h.Build()

	if state.total != 7 {
		t.Errorf("expected total 7, got %d", state.total)
	}
	if state.builds != 2 {
		t.Errorf("expected one rebuild after delivery, got %d builds", state.builds)
	}
	if len(dropped.messages) != 0 {
		t.Errorf("unexpected drops: %v", dropped.messages)
	}
}

func TestUseComposer_AfterUnmountDrops(t *testing.T) {
	h, dropped := newTestHierarchy(t)
	e := h.AddRoot(Elem(button{}))
	h.Build()
	press := stateOf[*buttonState](t, h, e).press

	h.RemoveRoot(e)
	press.Send(h, click{Count: 1})
	h.Build()

	if len(dropped.messages) != 1 {
		t.Fatalf("expected 1 dropped message, got %d", len(dropped.messages))
	}
}
