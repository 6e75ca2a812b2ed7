// Package ws provides WebSocket push support using gorilla/websocket.
//
// The hub keys connections by user ID so the notification service can push
// to exactly one recipient's open sockets:
//
//	// route:
//	router.Get("/notifications/stream", "notifications.stream", ctx.Wrap(func(c *ctx.Context) {
//	    ws.Upgrade(c.W, c.R, userID)
//	}))
//
//	// from the notification service:
//	ws.Hub.SendTo(userID, payload)
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/campuskart/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // clients only send pongs and acks
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ──────────────────────────────────────────────────────────────────

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

func (c *client) writePump(h *hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is to notice disconnects and
// keep the pong deadline fresh.
func (c *client) readPump(h *hub) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ─── Hub ─────────────────────────────────────────────────────────────────────

type hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // userID → open sockets
}

// Hub is the process-wide connection registry.
var Hub = &hub{clients: map[string]map[*client]struct{}{}}

func (h *hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = map[*client]struct{}{}
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.userID]; ok {
		if _, present := set[c]; present {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
}

// SendTo pushes a JSON-marshalled payload to every open socket of userID.
// Best effort: slow clients are skipped, marshal errors are logged.
func (h *hub) SendTo(userID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("ws: marshal payload", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			// Slow consumer; drop rather than block the caller.
		}
	}
}

// Connections returns the number of open sockets for userID (used in tests).
func (h *hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Upgrade promotes the HTTP request to a WebSocket connection registered
// under userID. Returns after spawning the read/write pumps.
func Upgrade(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{userID: userID, conn: conn, send: make(chan []byte, 64)}
	Hub.register(c)
	go c.writePump(Hub)
	go c.readPump(Hub)
	return nil
}
