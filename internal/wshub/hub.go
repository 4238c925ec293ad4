package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

const (
	TypeClick = "click"
	TypeStyle = "style"
	TypeJoin  = "join"
	TypeLeave = "leave"
	TypeError = "error"
)

// ClientMessage is the JSON structure received from clients.
type ClientMessage struct {
	Type      string `json:"t"`
	ElementID string `json:"id,omitempty"`
}

// ServerMessage is the JSON structure sent to clients. RGB is set on color
// style messages.
type ServerMessage struct {
	Type      string `json:"t"`
	ClientID  string `json:"cid,omitempty"`
	ElementID string `json:"id,omitempty"`
	Property  string `json:"k,omitempty"`
	Value     string `json:"c,omitempty"`
	RGB       []int  `json:"rgb,omitempty"`
	Error     string `json:"e,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump writes queued messages to the connection. When the hub closes
// Send the connection is closed with StatusGoingAway, which also ends the
// client's ReadPump.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.Conn.Close(websocket.StatusGoingAway, "page closed")
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// ReadPump decodes client messages until the connection closes and passes
// each to handle.
func (c *Client) ReadPump(ctx context.Context, handle func(ClientMessage)) error {
	for {
		_, data, err := c.Conn.Read(ctx)
		if err != nil {
			return err
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WSHub] Bad message from %s: %v\n", c.ID, err)
			continue
		}
		handle(msg)
	}
}

// offer queues data without blocking, dropping the oldest queued message
// when the buffer is full. Callers hold the hub lock, which keeps Send open.
func (c *Client) offer(data []byte) {
	select {
	case c.Send <- data:
		return
	default:
	}
	select {
	case <-c.Send:
	default:
	}
	select {
	case c.Send <- data:
	default:
		log.Printf("[WSHub] Dropping message for %s\n", c.ID)
	}
}

// Hub manages per-page WebSocket connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client and announces it to the others. On a closed hub
// the client's Send channel is closed right away.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.closed {
		close(c.Send)
		h.mu.Unlock()
		return
	}
	h.clients[c.ID] = c
	h.mu.Unlock()

	h.BroadcastExcept(c.ID, ServerMessage{
		Type:     TypeJoin,
		ClientID: c.ID,
	})
}

// Unregister removes a client and closes its Send channel, then broadcasts a leave message.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	c, ok := h.clients[clientID]
	if ok {
		close(c.Send)
		delete(h.clients, clientID)
	}
	h.mu.Unlock()

	if ok {
		h.BroadcastExcept(clientID, ServerMessage{
			Type:     TypeLeave,
			ClientID: clientID,
		})
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues msg for one registered client. Unknown ids are ignored.
func (h *Hub) Send(clientID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[clientID]; ok {
		c.offer(data)
	}
}

// Broadcast sends a message to every client.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to all clients except the sender.
func (h *Hub) BroadcastExcept(senderID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == senderID {
			continue
		}
		c.offer(data)
	}
}
