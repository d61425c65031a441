package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/domain"
)

// Hub tracks which sockets listen on which game channel and delivers
// published calls to them.
type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*Client]struct{} // channel → subscribers
	clients map[string]*Client              // connection id → client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
		log:     log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) Subscribe(channel string, c *Client) {
	h.mu.Lock()
	subs, ok := h.topics[channel]
	if !ok {
		subs = make(map[*Client]struct{})
		h.topics[channel] = subs
	}
	subs[c] = struct{}{}
	h.mu.Unlock()

	c.track(channel, true)
}

func (h *Hub) Unsubscribe(channel string, c *Client) {
	h.mu.Lock()
	h.unsubscribeLocked(channel, c)
	h.mu.Unlock()

	c.track(channel, false)
}

func (h *Hub) unsubscribeLocked(channel string, c *Client) {
	if subs, ok := h.topics[channel]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, channel)
		}
	}
}

// Remove drops the client from every channel and closes its send queue.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	for _, channel := range c.subscriptions() {
		h.unsubscribeLocked(channel, c)
	}
	delete(h.clients, c.ID)
	h.mu.Unlock()

	c.close()
}

// Publish implements broadcast.Publisher for local socket subscribers.
func (h *Hub) Publish(_ context.Context, channel string, call domain.Call) error {
	data, err := json.Marshal(call)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for c := range h.topics[channel] {
		if !c.enqueue(data) {
			dropped++
		}
	}
	if dropped > 0 {
		h.log.Warn().Str("channel", channel).Int("dropped", dropped).Msg("slow subscribers skipped")
	}
	return nil
}

func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[channel])
}

func (h *Hub) Channels() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics)
}

// TotalSubscribers counts subscriptions across all channels; a client on two
// games counts twice.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, subs := range h.topics {
		total += len(subs)
	}
	return total
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
