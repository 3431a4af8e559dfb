package main

import (
	"github.com/mcdev12/rosterdesk/go/internal/config"
	"github.com/mcdev12/rosterdesk/go/internal/gateway"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/roster"
)

func rosterRules(c config.Config) roster.Rules {
	return roster.Rules{
		JerseyMin:       c.Rules.JerseyMin,
		JerseyMax:       c.Rules.JerseyMax,
		CoverageMinimum: c.Rules.CoverageMinimum,
	}
}

func relayConfig(c config.Config) outbox.Config {
	cfg := outbox.DefaultConfig()
	cfg.PollInterval = c.Relay.PollInterval
	cfg.BatchSize = c.Relay.BatchSize
	cfg.MaxRetries = c.Relay.MaxRetries
	return cfg
}

func publisherConfig(c config.Config) outbox.JetStreamConfig {
	cfg := outbox.DefaultJetStreamConfig()
	cfg.URL = c.NATS.URL
	cfg.StreamName = c.NATS.Stream
	return cfg
}

func consumerConfig(c config.Config) gateway.ConsumerConfig {
	cfg := gateway.DefaultConsumerConfig()
	cfg.URL = c.NATS.URL
	cfg.StreamName = c.NATS.Stream
	cfg.ConsumerName = c.Gateway.Durable
	cfg.SubjectFilter = outbox.DefaultJetStreamConfig().SubjectPrefix + ".>"
	return cfg
}
