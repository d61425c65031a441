package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/bingo-hub/backend/internal/domain"
	"github.com/iamasit07/bingo-hub/backend/internal/service/broadcast"
)

type GamesHandler struct {
	Service *broadcast.Service
}

func NewGamesHandler(svc *broadcast.Service) *GamesHandler {
	return &GamesHandler{Service: svc}
}

type callRequest struct {
	Code      string `json:"code"`
	CreatedAt string `json:"createdAt"`
}

// GetCalls returns the codes already called so late joiners can catch up.
func (h *GamesHandler) GetCalls(c *gin.Context) {
	gameID := c.Param("gameId")
	c.JSON(http.StatusOK, h.Service.GetCalls(gameID))
}

// Reset clears the game's history and broadcasts the reset notice.
func (h *GamesHandler) Reset(c *gin.Context) {
	h.Service.Reset(c.Request.Context(), c.Param("gameId"))
	c.Status(http.StatusOK)
}

// PostCall is the HTTP intake for callers that cannot hold a socket open.
// Invalid calls are accepted and dropped, same as on every other intake.
func (h *GamesHandler) PostCall(c *gin.Context) {
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	call := domain.Call{
		GameID:    c.Param("gameId"),
		Code:      req.Code,
		CreatedAt: req.CreatedAt,
	}
	h.Service.HandleCall(c.Request.Context(), &call)
	c.Status(http.StatusAccepted)
}
