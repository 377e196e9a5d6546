// notifications/hub.go - WebSocket delivery of clip-shared events
package notifications

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Hub queues clip-shared events and pushes them to the recipient's open
// websocket connections. Events for users with no connection are
// dropped; the share itself is already persisted and shows up on the
// player's clip list regardless.
type Hub struct {
	mu    sync.RWMutex
	conns map[uint][]*websocket.Conn

	queue chan ClipSharedEvent
	done  chan struct{}
}

func NewHub() *Hub {
	h := &Hub{
		conns: make(map[uint][]*websocket.Conn),
		queue: make(chan ClipSharedEvent, 256),
		done:  make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case event := <-h.queue:
			h.deliver(event)
		case <-h.done:
			return
		}
	}
}

// ClipShared enqueues an event. A full queue drops the event rather
// than blocking the sharing request.
func (h *Hub) ClipShared(event ClipSharedEvent) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Type == "" {
		event.Type = "clip.shared"
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.queue <- event:
	default:
		log.Printf("notification queue full, dropping clip.shared event for user %d", event.RecipientID)
	}
}

func (h *Hub) deliver(event ClipSharedEvent) {
	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.conns[event.RecipientID]...)
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("notification delivery to user %d failed: %v", event.RecipientID, err)
			h.Unregister(event.RecipientID, conn)
		}
	}
}

// Register attaches a user's websocket connection.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[userID] = append(h.conns[userID], conn)
	h.mu.Unlock()
}

// Unregister detaches a connection, closing it. Both the socket
// handler's defer and a failed delivery call this; only the call that
// actually removes the connection closes it.
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	if h.remove(userID, conn) {
		conn.Close()
	}
}

func (h *Hub) remove(userID uint, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	found := false
	active := h.conns[userID][:0]
	for _, c := range h.conns[userID] {
		if c == conn {
			found = true
			continue
		}
		active = append(active, c)
	}
	if len(active) == 0 {
		delete(h.conns, userID)
	} else {
		h.conns[userID] = active
	}
	return found
}

// Stop shuts down the delivery loop.
func (h *Hub) Stop() {
	close(h.done)
}
