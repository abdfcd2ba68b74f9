package diag

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wireEvent is the JSON shape streamed over /ws.
type wireEvent struct {
	Kind    string  `json:"kind"`
	Channel uint8   `json:"channel,omitempty"`
	Raw     uint16  `json:"raw,omitempty"`
	Value   float32 `json:"value,omitempty"`
	Button  uint8   `json:"button,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	Num     int32   `json:"num,omitempty"`
	Str     string  `json:"str,omitempty"`
	AtMs    int64   `json:"at_ms"`
}

type client struct {
	conn *websocket.Conn
	send chan wireEvent
}

// hub fans bus events out to websocket clients. Delivery is lossy: a
// client whose buffer is full misses events rather than stalling the
// frame loop.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

func (h *hub) add(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan wireEvent, 32)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (h *hub) broadcast(we wireEvent) {
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- we:
		default:
		}
	}
	h.mu.Unlock()
}
