package broadcast

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/domain"
	"github.com/iamasit07/bingo-hub/backend/internal/service/registry"
)

// Publisher delivers a call to everyone listening on a channel.
// Delivery is fire-and-forget: errors are reported but never retried.
type Publisher interface {
	Publish(ctx context.Context, channel string, call domain.Call) error
}

type Options struct {
	ChannelPrefix string
	// SuppressDuplicates stops re-announcing codes the game already has.
	// Off by default: duplicates are re-broadcast with a fresh timestamp.
	SuppressDuplicates bool
	Logger             zerolog.Logger
	Now                func() time.Time
}

// Service validates inbound calls and resets, records them in the registry
// and publishes the outcome to the game's channel.
type Service struct {
	registry           *registry.CallRegistry
	publisher          Publisher
	prefix             string
	suppressDuplicates bool
	now                func() time.Time
	log                zerolog.Logger
}

func NewService(reg *registry.CallRegistry, pub Publisher, opts Options) *Service {
	prefix := opts.ChannelPrefix
	if prefix == "" {
		prefix = "bingo"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		registry:           reg,
		publisher:          pub,
		prefix:             prefix,
		suppressDuplicates: opts.SuppressDuplicates,
		now:                now,
		log:                opts.Logger,
	}
}

func (s *Service) Channel(gameID string) string {
	return domain.Channel(s.prefix, domain.NormalizeGameID(gameID))
}

// HandleCall accepts a call from any intake. Malformed calls are dropped
// without a trace beyond a debug line.
func (s *Service) HandleCall(ctx context.Context, call *domain.Call) {
	if call == nil {
		return
	}
	in := *call
	in.GameID = domain.NormalizeGameID(in.GameID)
	if err := in.Validate(); err != nil {
		s.log.Debug().Err(err).Str("gameId", call.GameID).Str("code", call.Code).Msg("dropping call")
		return
	}

	added := s.registry.AddIfAbsent(in.GameID, in.Code)
	if !added {
		s.log.Debug().Str("gameId", in.GameID).Str("code", in.Code).Msg("duplicate call")
		if s.suppressDuplicates {
			return
		}
	}

	s.publish(ctx, in.WithTimestamp(s.now()))
}

// Reset wipes the game's history and tells subscribers to do the same.
func (s *Service) Reset(ctx context.Context, gameID string) {
	gameID = domain.NormalizeGameID(gameID)
	if gameID == "" {
		return
	}
	s.registry.Clear(gameID)
	s.log.Info().Str("gameId", gameID).Msg("game reset")
	s.publish(ctx, domain.NewResetCall(gameID, s.now()))
}

// GetCalls returns the codes called so far for late joiners.
func (s *Service) GetCalls(gameID string) []string {
	return s.registry.List(domain.NormalizeGameID(gameID))
}

func (s *Service) publish(ctx context.Context, call domain.Call) {
	if s.publisher == nil {
		return
	}
	channel := s.Channel(call.GameID)
	if err := s.publisher.Publish(ctx, channel, call); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Str("code", call.Code).Msg("publish failed")
	}
}
