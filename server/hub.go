package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gostp/model_problems/RAC"
)

const (
	writeWait      = 5 * time.Second
	clientQueueLen = 256
)

// Msg is the envelope for everything pushed to a websocket client
type Msg struct {
	Type    string          `json:"type"` // "step", "status"
	Step    *RAC.StepResult `json:"step,omitempty"`
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Msg
}

// Hub fans step results out to the connected websocket clients. Slow
// clients lose messages rather than stall the integrator.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan Msg, clientQueueLen)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go h.writePump(c)
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(msg Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Debugf("websocket client %s is behind, dropping %s message", c.conn.RemoteAddr(), msg.Type)
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(&msg); err != nil {
			log.Warnf("websocket write: %v", err)
			go h.unregister(c)
			// Drain until unregister closes the queue
			for range c.send {
			}
			return
		}
	}
}

// readPump discards client input and unregisters on disconnect
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
