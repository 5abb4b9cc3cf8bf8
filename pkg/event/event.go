// Package event provides the in-process notification bus. The session
// controller subscribes to auth-change events here before it bootstraps, so
// a transition firing between those two steps is never lost.
package event

import "sync"

// Handler receives an event payload.
type Handler func(payload interface{})

// Bus is an explicitly-owned dispatcher. Construct one at the composition
// root and hand it to whatever needs it; there is no package-global bus.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string]map[int]Handler{}}
}

// Subscription identifies one registered handler. Cancel it to stop all
// further deliveries to that handler.
type Subscription struct {
	bus   *Bus
	topic string
	id    int
	once  sync.Once
}

// Cancel unregisters the handler. After Cancel returns, no new deliveries
// start; deliveries already in flight may still complete.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if hs, ok := s.bus.handlers[s.topic]; ok {
			delete(hs, s.id)
		}
	})
}

// Subscribe registers handler for the given topic and returns its
// subscription handle.
func (b *Bus) Subscribe(topic string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[topic] == nil {
		b.handlers[topic] = map[int]Handler{}
	}
	b.handlers[topic][id] = handler

	return &Subscription{bus: b, topic: topic, id: id}
}

// Publish dispatches payload synchronously to every handler subscribed to
// topic at the moment of the call.
func (b *Bus) Publish(topic string, payload interface{}) {
	for _, h := range b.snapshot(topic) {
		h(payload)
	}
}

// PublishAsync dispatches to every handler on its own goroutine and returns
// immediately.
func (b *Bus) PublishAsync(topic string, payload interface{}) {
	for _, h := range b.snapshot(topic) {
		go h(payload)
	}
}

func (b *Bus) snapshot(topic string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		hs = append(hs, h)
	}
	return hs
}
