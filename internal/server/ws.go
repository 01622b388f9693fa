package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/airbrush/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StatusHandler pushes per-frame pipeline status over WebSocket. It
// broadcasts the snapshot the frame loop already produced rather than
// running its own detection pass, so the camera and detector stay owned
// by a single consumer.
type StatusHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStatusHandler creates a new StatusHandler over the given app.
func NewStatusHandler(a *app.App) *StatusHandler {
	h := &StatusHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the latest frame status to all connected clients.
func (h *StatusHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	var lastSent int64

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		status := h.app.LastFrame()
		if status.Timestamp == 0 || status.Timestamp == lastSent {
			continue
		}
		lastSent = status.Timestamp

		msg, err := json.Marshal(status)
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
