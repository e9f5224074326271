// Package projection builds local timelines from observed events.
// Does not emit events or interact with UI directly.
package projection

import (
	"chat-sim/domain"
	"chat-sim/domain/event"
	"context"
	"sync"
)

// Timeline holds the chat messages seen by one client, in delivery order.
type Timeline struct {
	mu       sync.RWMutex
	Owner    string
	messages []domain.Message
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Consume(_ context.Context, e event.Event) error {
	switch msg := e.Payload.(type) {
	case domain.Message:
		if e.Name != event.NewMessage {
			return nil
		}
		t.mu.Lock()
		t.messages = append(t.messages, msg)
		t.mu.Unlock()
	}
	return nil
}

func (t *Timeline) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]domain.Message(nil), t.messages...)
}
