package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HubStats is what the status endpoint needs from the socket hub.
type HubStats interface {
	Channels() int
	Clients() int
	TotalSubscribers() int
}

// GameStats is what the status endpoint needs from the registry.
type GameStats interface {
	Games() int
}

type StatusHandler struct {
	Hub   HubStats
	Games GameStats
}

func NewStatusHandler(hub HubStats, games GameStats) *StatusHandler {
	return &StatusHandler{Hub: hub, Games: games}
}

type statusResponse struct {
	Status      string `json:"status"`
	Games       int    `json:"games"`
	Channels    int    `json:"channels"`
	Clients     int    `json:"clients"`
	Subscribers int    `json:"subscribers"`
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Status:      "ok",
		Games:       h.Games.Games(),
		Channels:    h.Hub.Channels(),
		Clients:     h.Hub.Clients(),
		Subscribers: h.Hub.TotalSubscribers(),
	})
}
