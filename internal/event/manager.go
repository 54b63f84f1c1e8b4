// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/fencedit/internal/logger"
)

// Handler receives an event. It returns true if the event was consumed;
// later handlers for the same event are then skipped.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager is a synchronous event bus.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[Type][]subscription
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler for eventType. Handlers run in subscription order.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Event Manager: handler %d subscribed to %v", m.nextID, eventType)
	return m.nextID
}

// Unsubscribe removes the subscription with the given id.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for eventType, subs := range m.handlers {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			m.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Dispatch runs the handlers for eventType on the calling goroutine and
// reports whether one of them consumed the event.
func (m *Manager) Dispatch(eventType Type, data interface{}) bool {
	event := Event{
		Type: eventType,
		Data: data,
	}

	m.mu.RLock()
	subs := make([]subscription, len(m.handlers[eventType]))
	copy(subs, m.handlers[eventType])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return false
	}

	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(subs))

	// Handlers may subscribe or unsubscribe while we iterate the copy.
	for _, sub := range subs {
		if sub.handler(event) {
			return true
		}
	}
	return false
}
