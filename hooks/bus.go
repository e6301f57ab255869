// Package hooks implements the ambient event bus used for lifecycle
// observability: tool-call begin/end, session/turn boundaries, and
// user-defined events. Delivery is synchronous fan-out in the publisher's
// goroutine; iteration stops at the first handler error, so a critical
// handler (e.g. persistence) can halt a turn by returning one.
package hooks

import (
	"context"
	"errors"
	"sync"
)

type (
	// Bus publishes events to registered handlers in a fan-out pattern. The
	// bus is safe for concurrent Emit, On, and Subscription.Close.
	Bus interface {
		// Emit delivers event to every handler registered for event.Name, in
		// registration order, stopping at the first handler error.
		Emit(ctx context.Context, event Event) error
		// On registers handler for the given event name and returns a
		// Subscription that can be closed to unregister it.
		On(name Name, handler Handler) (Subscription, error)
	}

	// Handler reacts to a single published event.
	Handler interface {
		HandleEvent(ctx context.Context, event Event) error
	}

	// HandlerFunc adapts a plain function into a Handler.
	HandlerFunc func(ctx context.Context, event Event) error

	// Subscription represents an active registration. Close is idempotent
	// and safe to call from any goroutine.
	Subscription interface {
		Close() error
	}

	bus struct {
		mu       sync.RWMutex
		handlers map[Name][]*subscriptionEntry
	}

	subscription struct {
		bus  *bus
		name Name
		once sync.Once
	}

	subscriptionEntry struct {
		sub     *subscription
		handler Handler
	}
)

// HandleEvent invokes the wrapped function.
func (f HandlerFunc) HandleEvent(ctx context.Context, event Event) error { return f(ctx, event) }

// NewBus constructs an in-memory event bus, ready for immediate use.
func NewBus() Bus {
	return &bus{handlers: make(map[Name][]*subscriptionEntry)}
}

// Emit delivers event to every handler currently registered for
// event.Name, in registration order. The snapshot of handlers is captured
// before iteration, so registrations/unregistrations during Emit do not
// affect the current delivery. Returns nil immediately if no handler is
// registered for the name.
func (b *bus) Emit(ctx context.Context, event Event) error {
	b.mu.RLock()
	entries := append([]*subscriptionEntry(nil), b.handlers[event.Name]...)
	b.mu.RUnlock()
	for _, e := range entries {
		if err := e.handler.HandleEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// On registers handler for name. Returns an error if handler is nil.
func (b *bus) On(name Name, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, errors.New("hooks: handler is required")
	}
	s := &subscription{bus: b, name: name}
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], &subscriptionEntry{sub: s, handler: handler})
	b.mu.Unlock()
	return s, nil
}

// Close unregisters the subscription. Idempotent and thread-safe.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		entries := s.bus.handlers[s.name]
		for i, e := range entries {
			if e.sub == s {
				s.bus.handlers[s.name] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		s.bus.mu.Unlock()
	})
	return nil
}
