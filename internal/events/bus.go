package events

import (
	"fmt"
	"io"
	"os"
)

// Handler consumes a dispatched event. Handlers run synchronously on the
// dispatching goroutine and must be fast and non-blocking.
type Handler func(Event)

// Bus is a single-process publish/subscribe dispatcher. It is constructed
// once per game context and passed explicitly to anything that publishes or
// subscribes; there is no package-level instance.
//
// Bus is not safe for concurrent use. The engine runs one logical thread
// per session, so no locking discipline is needed here.
type Bus struct {
	handlers map[Kind][]Handler
	errw     io.Writer
}

// NewBus creates an empty bus. Handler panics are reported to os.Stderr.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		errw:     os.Stderr,
	}
}

// SetErrorWriter redirects handler-failure diagnostics, mainly for tests.
func (b *Bus) SetErrorWriter(w io.Writer) {
	b.errw = w
}

// Subscribe registers a handler for a kind. Multiple handlers per kind are
// allowed; dispatch order is registration order.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Dispatch invokes every handler registered for the event's kind, in
// registration order. A panicking handler does not prevent the remaining
// handlers from running and never propagates to the emitter. Dispatching a
// kind with no subscribers is a no-op.
func (b *Bus) Dispatch(e Event) {
	for _, h := range b.handlers[e.Kind] {
		b.invoke(h, e)
	}
}

func (b *Bus) invoke(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(b.errw, "events: handler for %s panicked: %v\n", e.Kind, r)
		}
	}()
	h(e)
}
