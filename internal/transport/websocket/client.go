package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one subscriber socket. All writes go through the send queue
// and a single writer goroutine, because conn writes are not thread-safe.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte

	limiter *rate.Limiter

	mu       sync.Mutex
	closed   bool
	channels map[string]struct{}
}

func newClient(id string, conn *websocket.Conn, limiter *rate.Limiter) *Client {
	return &Client{
		ID:       id,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		limiter:  limiter,
		channels: make(map[string]struct{}),
	}
}

// enqueue hands a frame to the writer. Slow clients lose frames instead of
// stalling the broadcast.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) sendJSON(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return c.enqueue(data)
}

func (c *Client) allowCall() bool {
	return c.limiter == nil || c.limiter.Allow()
}

func (c *Client) track(channel string, subscribed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if subscribed {
		c.channels[channel] = struct{}{}
	} else {
		delete(c.channels, channel)
	}
}

func (c *Client) subscriptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.channels))
	for ch := range c.channels {
		out = append(out, ch)
	}
	return out
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
