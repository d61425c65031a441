package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/domain"
)

const (
	publishTimeout  = 2 * time.Second
	drainTimeout    = 2 * time.Second
	mirrorQueueSize = 256
)

// InitRedis connects to Redis. It returns a nil client, not an error, when
// Redis is disabled or unreachable so the hub can run without it.
func InitRedis(cfg *config.Config, log zerolog.Logger) *redis.Client {
	if !cfg.RedisEnabled {
		log.Info().Msg("redis mirror disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisURL).Msg("could not connect to redis, mirror disabled")
		client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.RedisURL).Msg("connected")
	return client
}

// ErrMirrorQueueFull is returned when the mirror cannot keep up and a call
// is dropped instead of stalling the broadcast.
var ErrMirrorQueueFull = errors.New("redis mirror queue full")

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("redis publisher closed")

type mirrorJob struct {
	channel string
	payload []byte
}

// RedisPublisher mirrors every published call onto the Redis channel of
// the same name, for consumers outside the hub. Publish only enqueues; a
// single worker talks to Redis, so an unreachable server never holds up
// the caller.
type RedisPublisher struct {
	client *redis.Client
	log    zerolog.Logger
	queue  chan mirrorJob
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewRedisPublisher(client *redis.Client, log zerolog.Logger) *RedisPublisher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &RedisPublisher{
		client: client,
		log:    log,
		queue:  make(chan mirrorJob, mirrorQueueSize),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	go r.run()
	return r
}

func (r *RedisPublisher) Publish(_ context.Context, channel string, call domain.Call) error {
	payload, err := json.Marshal(call)
	if err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrPublisherClosed
	}
	select {
	case r.queue <- mirrorJob{channel: channel, payload: payload}:
		return nil
	default:
		return ErrMirrorQueueFull
	}
}

func (r *RedisPublisher) run() {
	defer close(r.done)
	for job := range r.queue {
		ctx, cancel := context.WithTimeout(r.ctx, publishTimeout)
		if err := r.client.Publish(ctx, job.channel, job.payload).Err(); err != nil {
			r.log.Warn().Err(err).Str("channel", job.channel).Msg("mirror publish failed")
		}
		cancel()
	}
}

// Close stops accepting calls, gives the worker drainTimeout to flush what
// is queued and then closes the client.
func (r *RedisPublisher) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	select {
	case <-r.done:
	case <-time.After(drainTimeout):
		r.cancel()
		<-r.done
	}
	r.cancel()

	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
