package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/repository/redis"
	"github.com/iamasit07/bingo-hub/backend/internal/service/broadcast"
	"github.com/iamasit07/bingo-hub/backend/internal/service/registry"
	transportHttp "github.com/iamasit07/bingo-hub/backend/internal/transport/http"
	transportNats "github.com/iamasit07/bingo-hub/backend/internal/transport/nats"
	"github.com/iamasit07/bingo-hub/backend/internal/transport/websocket"
	"github.com/iamasit07/bingo-hub/backend/pkg/logx"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	logger := logx.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug().Msg("no .env file found")
	}
	gin.SetMode(gin.ReleaseMode)

	// 1. Core: call history + local socket fan-out
	calls := registry.New(cfg.RegistryShards)
	hub := websocket.NewHub(logx.Component(logger, "ws"))
	publisher := broadcast.NewFanOut(logx.Component(logger, "fanout"), hub)

	// 2. Optional mirrors for consumers outside the hub
	redisLog := logx.Component(logger, "redis")
	if client := redis.InitRedis(cfg, redisLog); client != nil {
		redisPub := redis.NewRedisPublisher(client, redisLog)
		defer redisPub.Close()
		publisher.Add(redisPub)
	}

	natsLog := logx.Component(logger, "nats")
	nc := transportNats.Connect(cfg, natsLog)
	if nc != nil {
		defer nc.Close()
		publisher.Add(transportNats.NewPublisher(nc, cfg.ChannelPrefix, natsLog))
	}

	service := broadcast.NewService(calls, publisher, broadcast.Options{
		ChannelPrefix:      cfg.ChannelPrefix,
		SuppressDuplicates: cfg.SuppressDuplicates,
		Logger:             logx.Component(logger, "broadcast"),
	})

	// 3. Intakes
	if nc != nil {
		intake := transportNats.NewIntake(nc, service, cfg.ChannelPrefix, natsLog)
		if err := intake.Start(); err != nil {
			natsLog.Warn().Err(err).Msg("nats intake unavailable")
		} else {
			defer intake.Stop()
		}
	}

	wsHandler := websocket.NewHandler(hub, service, cfg, logx.Component(logger, "ws"))
	router := transportHttp.NewRouter(cfg, logx.Component(logger, "http"), transportHttp.Routes{
		Games:     transportHttp.NewGamesHandler(service),
		Status:    transportHttp.NewStatusHandler(hub, calls),
		WebSocket: wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Int("sinks", publisher.Len()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited gracefully")
}
