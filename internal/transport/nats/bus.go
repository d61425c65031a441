package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/iamasit07/bingo-hub/backend/internal/config"
	"github.com/iamasit07/bingo-hub/backend/internal/domain"
)

// Connect dials the broker. A nil connection means NATS is off for this
// process, either by config or because the broker could not be reached.
func Connect(cfg *config.Config, log zerolog.Logger) *nats.Conn {
	if !cfg.NATSEnabled {
		log.Info().Msg("nats disabled")
		return nil
	}

	opts := []nats.Option{
		nats.Name("bingo-hub"),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("reconnected")
		}),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		log.Warn().Err(err).Str("url", cfg.NATSURL).Msg("could not connect to nats, bus disabled")
		return nil
	}
	log.Info().Str("url", nc.ConnectedUrl()).Msg("connected")
	return nc
}

// SubjectRoot turns a channel prefix such as "topic/bingo" into "topic.bingo".
func SubjectRoot(prefix string) string {
	return strings.ReplaceAll(strings.Trim(prefix, "/"), "/", ".")
}

// GameSubject is the subject a game's calls are mirrored on, e.g.
// "bingo.games.g1". Game ids that cannot form a single subject token
// are rejected.
func GameSubject(prefix, gameID string) (string, bool) {
	if gameID == "" || strings.ContainsAny(gameID, ". \t\r\n*>/") {
		return "", false
	}
	return SubjectRoot(prefix) + ".games." + gameID, true
}

// Publisher mirrors published calls to NATS.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	log    zerolog.Logger
}

func NewPublisher(nc *nats.Conn, prefix string, log zerolog.Logger) *Publisher {
	return &Publisher{nc: nc, prefix: prefix, log: log}
}

func (p *Publisher) Publish(_ context.Context, channel string, call domain.Call) error {
	subject, ok := GameSubject(p.prefix, call.GameID)
	if !ok {
		p.log.Warn().Str("channel", channel).Str("gameId", call.GameID).Msg("game id not usable as subject, skipping mirror")
		return nil
	}
	data, err := json.Marshal(call)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// CallHandler is the part of the broadcast service the intake feeds.
type CallHandler interface {
	HandleCall(ctx context.Context, call *domain.Call)
	Reset(ctx context.Context, gameID string)
}

// Intake accepts calls and resets published on "<root>.call" and
// "<root>.reset" by other services.
type Intake struct {
	nc      *nats.Conn
	handler CallHandler
	root    string
	subs    []*nats.Subscription
	log     zerolog.Logger
}

func NewIntake(nc *nats.Conn, handler CallHandler, prefix string, log zerolog.Logger) *Intake {
	return &Intake{nc: nc, handler: handler, root: SubjectRoot(prefix), log: log}
}

func (i *Intake) CallSubject() string  { return i.root + ".call" }
func (i *Intake) ResetSubject() string { return i.root + ".reset" }

func (i *Intake) Start() error {
	callSub, err := i.nc.Subscribe(i.CallSubject(), i.onCall)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", i.CallSubject(), err)
	}
	resetSub, err := i.nc.Subscribe(i.ResetSubject(), i.onReset)
	if err != nil {
		callSub.Unsubscribe()
		return fmt.Errorf("subscribe %s: %w", i.ResetSubject(), err)
	}
	i.subs = []*nats.Subscription{callSub, resetSub}
	i.log.Info().Str("call", i.CallSubject()).Str("reset", i.ResetSubject()).Msg("intake listening")
	return nil
}

func (i *Intake) Stop() {
	for _, sub := range i.subs {
		sub.Unsubscribe()
	}
	i.subs = nil
}

func (i *Intake) onCall(m *nats.Msg) {
	var call domain.Call
	if err := json.Unmarshal(m.Data, &call); err != nil {
		i.log.Debug().Err(err).Str("subject", m.Subject).Msg("undecodable call")
		return
	}
	i.handler.HandleCall(context.Background(), &call)
}

func (i *Intake) onReset(m *nats.Msg) {
	var req struct {
		GameID string `json:"gameId"`
	}
	if err := json.Unmarshal(m.Data, &req); err != nil {
		i.log.Debug().Err(err).Str("subject", m.Subject).Msg("undecodable reset")
		return
	}
	i.handler.Reset(context.Background(), req.GameID)
}
