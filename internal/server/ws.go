package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/gorilla/websocket"
)

// statusInterval is how often the status is checked for changes.
const statusInterval = 100 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StatusHandler pushes the status JSON to WebSocket clients whenever it
// changes.
type StatusHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	last    statusResponse
	mu      sync.Mutex
	stop    chan struct{}
	once    sync.Once
}

// NewStatusHandler creates a new StatusHandler and starts its broadcaster.
func NewStatusHandler(a *app.App) *StatusHandler {
	h := &StatusHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
		last:    newStatusResponse(a.Snapshot()),
		stop:    make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// Writes to conn happen only while holding h.mu
	h.mu.Lock()
	h.clients[conn] = true
	err = conn.WriteJSON(newStatusResponse(h.app.Snapshot()))
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	if err != nil {
		return
	}

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected clients.
func (h *StatusHandler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close stops the broadcaster.
func (h *StatusHandler) Close() {
	h.once.Do(func() { close(h.stop) })
}

// broadcast sends the status to all clients when it differs from the last
// one sent.
func (h *StatusHandler) broadcast() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}

		status := newStatusResponse(h.app.Snapshot())

		h.mu.Lock()
		if status == h.last {
			h.mu.Unlock()
			continue
		}
		h.last = status
		for conn := range h.clients {
			conn.SetWriteDeadline(time.Now().Add(time.Second))
			if err := conn.WriteJSON(status); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}
