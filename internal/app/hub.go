package app

import "sync"

// Hub fans encoded frames out to any number of subscribers. Each
// subscriber holds at most one pending frame; a newer frame replaces one
// that has not been read yet.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan []byte]struct{}
	latest []byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan []byte]struct{})}
}

// Publish delivers frame to every subscriber without blocking.
func (h *Hub) Publish(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = frame
	for ch := range h.subs {
		// Drop the stale frame, if any, then deliver
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- frame:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The channel starts with the most
// recent frame when there is one. Call the returned function to
// unsubscribe.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.latest != nil {
		ch <- h.latest
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
		})
	}
}

// Latest returns the most recently published frame, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
