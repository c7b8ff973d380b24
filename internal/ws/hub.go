package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"isml_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Event is what subscribers of a batch feed receive.
type Event struct {
	EventType string      `json:"event_type"`
	BatchID   string      `json:"batch_id"`
	Data      interface{} `json:"data"`
}

// Hub keeps websocket clients grouped by batch and fans events out to them.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Run serves the hub's channels until ctx is done. Call it once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for batchID, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, batchID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.BatchID] == nil {
				h.clients[client.BatchID] = make(map[*Client]bool)
			}
			h.clients[client.BatchID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Error("encode ws event", err, zap.String("event_type", event.EventType))
				continue
			}
			h.mu.Lock()
			for client := range h.clients[event.BatchID] {
				select {
				case client.Send <- payload:
				default:
					// Slow consumer; drop it rather than block the hub.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.BatchID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.BatchID)
	}
}

// Publish queues an event without blocking the caller; events are dropped
// when the hub is saturated.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- event:
	default:
		logger.Warn("ws hub saturated, event dropped",
			zap.String("event_type", event.EventType),
			zap.String("batch_id", event.BatchID))
	}
}

// Subscribers reports how many clients follow a batch.
func (h *Hub) Subscribers(batchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[batchID])
}

// Client is one websocket connection following a batch.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	BatchID string
}

// readPump only watches for the connection going away; clients do not send.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades GET /api/batches/:id/ws and subscribes the connection to
// that batch's events.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		batchID := c.Param("id")
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", zap.Error(err), zap.String("batch_id", batchID))
			return
		}
		client := &Client{
			Hub:     h,
			Conn:    conn,
			Send:    make(chan []byte, sendBuffer),
			BatchID: batchID,
		}
		select {
		case h.register <- client:
		case <-h.done:
			conn.Close()
			return
		}

		go client.writePump()
		client.readPump()
	}
}
