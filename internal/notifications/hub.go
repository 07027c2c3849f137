package notifications

import (
	"sync"
	"sync/atomic"
)

const defaultClientBuffer = 16

// Hub fans live events out to connected SSE clients. A client whose buffer is
// full misses the event rather than blocking the broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Subscriber]struct{}
	buffer  int
	closed  bool
	dropped atomic.Int64
}

// Subscriber is one connected client.
type Subscriber struct {
	ch chan Event
}

// Events is the stream of events for this client. It is closed on Unsubscribe.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// NewHub creates a hub whose clients buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Hub{clients: make(map[*Subscriber]struct{}), buffer: buffer}
}

// Subscribe registers a new client. After Close the returned subscriber's
// channel is already closed.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan Event, h.buffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.clients[sub] = struct{}{}
	return sub
}

// Close disconnects every client so their streams can return. It is meant
// for server shutdown and is safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for sub := range h.clients {
		delete(h.clients, sub)
		close(sub.ch)
	}
}

// Unsubscribe removes the client and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[sub]; !ok {
		return
	}
	delete(h.clients, sub)
	close(sub.ch)
}

// Broadcast delivers evt to every client with room in its buffer.
func (h *Hub) Broadcast(evt Event) (delivered, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.clients {
		select {
		case sub.ch <- evt:
			delivered++
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.dropped.Add(int64(dropped))
	}
	return delivered, dropped
}

// Clients reports how many clients are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped reports the total number of events dropped for slow clients.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
