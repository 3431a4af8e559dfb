package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

type ConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    "ROSTER_EVENTS",
		ConsumerName:  "roster-gateway",
		SubjectFilter: "roster.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Consumer reads roster events from a durable JetStream consumer and
// forwards them to the hub
type Consumer struct {
	hub      *Hub
	nc       *nats.Conn
	consumer jetstream.Consumer
	config   ConsumerConfig
}

func NewConsumer(ctx context.Context, hub *Hub, config ConsumerConfig) (*Consumer, error) {
	nc, err := outbox.Connect(config.URL, config.MaxReconnects, config.ReconnectWait)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		Durable:       config.ConsumerName,
		Description:   "Roster gateway websocket consumer",
		FilterSubject: config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    config.MaxDeliver,
		AckWait:       config.AckWait,
		MaxAckPending: config.MaxAckPending,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}

	log.Info().
		Str("consumer", config.ConsumerName).
		Str("stream", config.StreamName).
		Msg("JetStream consumer ready")

	return &Consumer{hub: hub, nc: nc, consumer: consumer, config: config}, nil
}

// Start consumes until ctx is done, acking each message after broadcast
func (c *Consumer) Start(ctx context.Context) error {
	cc, err := c.consumer.Consume(func(msg jetstream.Msg) {
		if err := c.Dispatch(msg.Data()); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to dispatch roster event")
			// a malformed envelope will never succeed
			if termErr := msg.Term(); termErr != nil {
				log.Error().Err(termErr).Msg("failed to terminate message")
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ACK message")
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer cc.Stop()

	<-ctx.Done()
	log.Info().Msg("roster event consumer shutting down")
	return nil
}

var errNoTeam = errors.New("envelope has no team id")

// Dispatch decodes one envelope and broadcasts it to its team's connections
func (c *Consumer) Dispatch(data []byte) error {
	var env outbox.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}
	if env.TeamID <= 0 {
		return errNoTeam
	}

	c.hub.Broadcast(env.TeamID, data)

	log.Debug().
		Str("event_id", env.EventID).
		Str("event_type", string(env.EventType)).
		Int64("team_id", env.TeamID).
		Msg("roster event forwarded")
	return nil
}

func (c *Consumer) Stop() {
	if c.nc != nil {
		c.nc.Close()
	}
}
