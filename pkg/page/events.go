package page

import (
	"github.com/aretw0/fitlanding/pkg/ports"
)

var _ ports.EventSource = (*Page)(nil)

// On registers h for eventType on target. Handlers run in registration order.
func (p *Page) On(target, eventType string, h ports.Handler) ports.DetachFunc {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextReg++
	id := p.nextReg
	key := handlerKey{target: target, eventType: eventType}
	p.handlers[key] = append(p.handlers[key], registration{id: id, h: h})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		regs := p.handlers[key]
		for i, r := range regs {
			if r.id == id {
				p.handlers[key] = append(regs[:i:i], regs[i+1:]...)
				break
			}
		}
		if len(p.handlers[key]) == 0 {
			delete(p.handlers, key)
		}
	}
}

// Dispatch delivers ev to every handler registered for its target and type.
// Each handler runs to completion before Dispatch returns. It reports whether
// any handler was registered.
func (p *Page) Dispatch(ev ports.Event) bool {
	p.mu.Lock()
	regs := append([]registration(nil), p.handlers[handlerKey{target: ev.Target, eventType: ev.Type}]...)
	p.mu.Unlock()

	for _, r := range regs {
		r.h(ev)
	}
	return len(regs) > 0
}

// HandlerCount returns the number of registered handlers.
func (p *Page) HandlerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, regs := range p.handlers {
		n += len(regs)
	}
	return n
}
