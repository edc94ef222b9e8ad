package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/auth"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Time allowed for the auth message
	authWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Send channel buffer size
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client represents a WebSocket client connection
type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	logger        *zap.Logger
	authenticated bool
	permissions   []auth.Permission
	username      string

	// nodes restricts readings to these node addresses. Empty means all.
	mu    sync.Mutex
	nodes map[string]bool
}

func (c *Client) remoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(authWait))

	for {
		var msg map[string]interface{}
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read error",
					zap.Error(err),
					zap.String("remote_addr", c.remoteAddr()))
			}
			break
		}

		// First message MUST be authentication
		if !c.authenticated {
			if msgType, ok := msg["type"].(string); !ok || msgType != "auth" {
				c.sendAuthFailed("First message must be authentication")
				return
			}

			token, ok := msg["token"].(string)
			if !ok || token == "" {
				c.sendAuthFailed("Missing token in auth message")
				return
			}

			claims, permissions, err := c.hub.authService.ValidateToken(token)
			if err != nil {
				c.logger.Warn("WebSocket authentication failed",
					zap.Error(err),
					zap.String("remote_addr", c.remoteAddr()))
				c.sendAuthFailed("Invalid or expired token")
				return
			}

			c.authenticated = true
			c.permissions = permissions
			c.username = claims.Username
			c.conn.SetReadDeadline(time.Now().Add(pongWait))
			c.conn.SetPongHandler(func(string) error {
				c.conn.SetReadDeadline(time.Now().Add(pongWait))
				return nil
			})

			c.sendAuthSuccess(permissions)
			c.logger.Info("WebSocket client authenticated",
				zap.String("remote_addr", c.remoteAddr()),
				zap.String("username", c.username))

			// NOW register to hub (only after auth)
			select {
			case c.hub.register <- c:
			case <-c.hub.done:
				return
			}
			go c.writePump()
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) sendAuthSuccess(permissions []auth.Permission) {
	c.sendDirect(map[string]interface{}{
		"type":        "auth_success",
		"timestamp":   time.Now(),
		"permissions": permissions,
	})
}

// sendAuthFailed answers before writePump runs, so the frame is written inline.
func (c *Client) sendAuthFailed(reason string) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteJSON(map[string]interface{}{
		"type":      "auth_failed",
		"timestamp": time.Now(),
		"reason":    reason,
	})
}

func (c *Client) sendDirect(msg map[string]interface{}) {
	data, _ := json.Marshal(msg)
	select {
	case c.send <- data:
	default:
	}
}

// handleMessage processes client commands after authentication.
// {"type":"subscribe","nodes":["fx_inv_10_1"]} narrows readings to those
// nodes; an empty list subscribes to everything again.
func (c *Client) handleMessage(msg map[string]interface{}) {
	c.logger.Debug("Received client message",
		zap.String("remote_addr", c.remoteAddr()),
		zap.Any("message", msg))

	msgType, _ := msg["type"].(string)
	switch msgType {
	case "subscribe":
		nodes := make(map[string]bool)
		if list, ok := msg["nodes"].([]interface{}); ok {
			for _, n := range list {
				if s, ok := n.(string); ok && s != "" {
					nodes[s] = true
				}
			}
		}
		c.mu.Lock()
		c.nodes = nodes
		c.mu.Unlock()

		subscribed := make([]string, 0, len(nodes))
		for n := range nodes {
			subscribed = append(subscribed, n)
		}
		c.sendDirect(map[string]interface{}{
			"type":      "subscribed",
			"timestamp": time.Now(),
			"nodes":     subscribed,
		})
	case "ping":
		c.sendDirect(map[string]interface{}{
			"type":      "pong",
			"timestamp": time.Now(),
		})
	}
}

// filter returns a narrowed copy of msg for clients with a subscription.
func (c *Client) filter(msg Message) (Message, bool) {
	if msg.Type != MessageTypeReadings {
		return msg, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.nodes) == 0 {
		return msg, false
	}
	snap, ok := msg.Data.(monitor.Snapshot)
	if !ok {
		return msg, false
	}
	msg.Data = filterReadings(snap, c.nodes)
	return msg, true
}

// writePump handles writing messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles WebSocket upgrade requests. The client joins the hub once
// its first message authenticated it.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("WebSocket upgrade error",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr))
		return
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: hub.logger,
	}

	go client.readPump()
}
