package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/transport/http/middleware"
)

type Routes struct {
	Games     *GamesHandler
	Status    *StatusHandler
	WebSocket gin.HandlerFunc
}

// NewRouter mounts the REST helpers and the socket endpoint.
func NewRouter(cfg *config.Config, log zerolog.Logger, routes Routes) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(log), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg, log))

	api := router.Group("/api/games/:gameId")
	{
		api.GET("/calls", routes.Games.GetCalls)
		api.POST("/calls", routes.Games.PostCall)
		api.POST("/reset", routes.Games.Reset)
	}

	router.GET("/status", routes.Status.GetStatus)

	if routes.WebSocket != nil {
		router.GET("/ws", routes.WebSocket)
	}

	return router
}
