package runtime

import (
	"chat-sim/domain/event"
	"chat-sim/errors"
	"fmt"
	"log/slog"
	"sync"
)

// Registry holds the subscribers of every event name.
// Handlers of one name are kept in registration order, duplicates included.
type Registry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	handlers map[string][]event.Handler
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:      log,
		handlers: make(map[string][]event.Handler),
	}
}

// On appends a handler to the subscribers of name.
func (r *Registry) On(name string, handler event.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = append(r.handlers[name], handler)
}

// Off removes every handler registered for name.
func (r *Registry) Off(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

func (r *Registry) Count(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[name])
}

// Deliver invokes every handler of evt.Name in registration order and
// returns how many were invoked.
// Handlers run outside the lock on a snapshot, so a handler may subscribe
// or unsubscribe without deadlocking; changes apply to the next delivery.
// A failing handler is logged and never prevents the following ones.
func (r *Registry) Deliver(evt event.Event) int {
	r.mu.RLock()
	handlers := append([]event.Handler(nil), r.handlers[evt.Name]...)
	r.mu.RUnlock()

	for _, handler := range handlers {
		if err := invoke(handler, evt); err != nil {
			r.log.Error(fmt.Sprintf("Error in %s handler", evt.Name), "error", err)
		}
	}
	return len(handlers)
}

func invoke(handler event.Handler, evt event.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, rec)
		}
	}()
	return handler(evt)
}
