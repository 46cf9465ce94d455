package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans search-trace events out to every connected websocket client.
type Hub struct {
	mu             sync.Mutex
	clients        map[*Client]struct{}
	broadcastTrace chan traceEvent
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// traceEvent mirrors one completed deepening iteration.
type traceEvent struct {
	Depth     int   `json:"depth"`
	Score     int   `json:"score"`
	Row       int   `json:"row"`
	Col       int   `json:"col"`
	Nodes     int64 `json:"nodes"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

func NewHub() *Hub {
	return &Hub{
		clients:        make(map[*Client]struct{}),
		broadcastTrace: make(chan traceEvent, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastTrace:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "trace", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a trace event without blocking the search goroutine.
func (h *Hub) Publish(event traceEvent) {
	select {
	case h.broadcastTrace <- event:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// writePump drains a client's send queue onto the connection. Idle peers get
// ping control frames so a dead connection surfaces as a write error instead
// of lingering in the hub.
func writePump(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				deadline := time.Now().Add(wsWriteTimeout)
				return conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return err
			}
		}
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
