package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/domain"
)

func TestRedisPublisherMirrorsCall(t *testing.T) {
	mr := miniredis.RunT(t)

	client := InitRedis(&config.Config{RedisEnabled: true, RedisURL: mr.Addr()}, zerolog.Nop())
	if client == nil {
		t.Fatal("expected a connected client")
	}
	pub := NewRedisPublisher(client, zerolog.Nop())
	defer pub.Close()

	ctx := context.Background()
	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer sub.Close()
	ps := sub.Subscribe(ctx, "bingo/g1")
	defer ps.Close()
	if _, err := ps.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	call := domain.Call{GameID: "g1", Code: "B7", CreatedAt: "2024-01-01T00:00:00Z"}
	if err := pub.Publish(ctx, "bingo/g1", call); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-ps.Channel():
		var got domain.Call
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != call {
			t.Errorf("mirrored %+v, want %+v", got, call)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no message mirrored to redis")
	}
}

func TestInitRedisDisabledOrUnreachable(t *testing.T) {
	if c := InitRedis(&config.Config{RedisEnabled: false}, zerolog.Nop()); c != nil {
		t.Error("disabled redis should yield nil client")
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()
	if c := InitRedis(&config.Config{RedisEnabled: true, RedisURL: addr}, zerolog.Nop()); c != nil {
		t.Error("unreachable redis should yield nil client")
	}
}

func TestRedisPublisherDoesNotBlockWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := InitRedis(&config.Config{RedisEnabled: true, RedisURL: mr.Addr()}, zerolog.Nop())
	if client == nil {
		mr.Close()
		t.Fatal("expected a connected client")
	}
	pub := NewRedisPublisher(client, zerolog.Nop())
	defer pub.Close()
	mr.Close()

	ctx := context.Background()
	call := domain.Call{GameID: "g1", Code: "B7", CreatedAt: "2024-01-01T00:00:00Z"}
	for i := 0; i < 20; i++ {
		start := time.Now()
		err := pub.Publish(ctx, "bingo/g1", call)
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("publish %d took %v with redis down", i, elapsed)
		}
		if err != nil && !errors.Is(err, ErrMirrorQueueFull) {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
}

func TestRedisPublisherDropsWhenQueueFull(t *testing.T) {
	// No worker: the queue only fills.
	pub := &RedisPublisher{queue: make(chan mirrorJob, 1), log: zerolog.Nop()}
	ctx := context.Background()
	call := domain.Call{GameID: "g1", Code: "B7"}

	if err := pub.Publish(ctx, "bingo/g1", call); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if err := pub.Publish(ctx, "bingo/g1", call); !errors.Is(err, ErrMirrorQueueFull) {
		t.Errorf("second publish error = %v, want ErrMirrorQueueFull", err)
	}

	pub.closed = true
	if err := pub.Publish(ctx, "bingo/g1", call); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("publish after close = %v, want ErrPublisherClosed", err)
	}
}
