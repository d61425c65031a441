package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/domain"
	"github.com/iamasit07/bingo-hub/backend/internal/service/broadcast"
	"github.com/iamasit07/bingo-hub/backend/pkg/uid"
)

// Handler manages WebSocket dependencies
type Handler struct {
	Hub       *Hub
	Service   *broadcast.Service
	Upgrader  websocket.Upgrader
	callRate  rate.Limit
	callBurst int
	log       zerolog.Logger
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(hub *Hub, svc *broadcast.Service, cfg *config.Config, log zerolog.Logger) *Handler {
	burst := cfg.WSCallBurst
	if burst <= 0 {
		burst = 1
	}
	callRate := rate.Limit(cfg.WSCallRate)
	if cfg.WSCallRate <= 0 {
		callRate = rate.Inf
	}
	return &Handler{
		Hub:     hub,
		Service: svc,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cfg.IsOriginAllowed(origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		callRate:  callRate,
		callBurst: burst,
		log:       log,
	}
}

// HandleWebSocket upgrades the request and serves the socket until it closes.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	client := newClient(uid.GenerateConnectionID(), conn, rate.NewLimiter(h.callRate, h.callBurst))
	h.Hub.Register(client)
	go client.writePump()

	h.handleConnection(client)
}

// handleConnection runs the read loop of a single socket
func (h *Handler) handleConnection(client *Client) {
	conn := client.conn
	log := h.log.With().Str("conn", client.ID).Logger()
	log.Debug().Msg("connection opened")

	defer func() {
		h.Hub.Remove(client)
		log.Debug().Msg("connection closed")
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("client disconnected unexpectedly")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("invalid message format")
			continue
		}

		h.processMessage(client, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(client *Client, msg domain.ClientMessage) {
	gameID := domain.NormalizeGameID(msg.GameID)
	if gameID == "" {
		return
	}
	ctx := context.Background()

	switch msg.Type {
	case domain.MsgSubscribe:
		channel := h.Service.Channel(gameID)
		h.Hub.Subscribe(channel, client)
		client.sendJSON(domain.ServerMessage{
			Type:    domain.MsgSubscribed,
			GameID:  gameID,
			Channel: channel,
			Calls:   h.Service.GetCalls(gameID),
		})

	case domain.MsgUnsubscribe:
		channel := h.Service.Channel(gameID)
		h.Hub.Unsubscribe(channel, client)
		client.sendJSON(domain.ServerMessage{Type: domain.MsgUnsubscribed, GameID: gameID, Channel: channel})

	case domain.MsgCall:
		if !client.allowCall() {
			h.log.Debug().Str("conn", client.ID).Str("gameId", gameID).Msg("call rate exceeded")
			return
		}
		call := msg.Call()
		h.Service.HandleCall(ctx, &call)

	case domain.MsgReset:
		h.Service.Reset(ctx, gameID)
	}
}
