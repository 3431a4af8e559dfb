// Package config loads process settings from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	NATS    NATSConfig    `yaml:"nats"`
	Rules   LeagueRules   `yaml:"rules"`
	Relay   RelayConfig   `yaml:"relay"`
	Gateway GatewayConfig `yaml:"gateway"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// DefaultActorID is recorded as the actor when a request carries no actor header
	DefaultActorID int64 `yaml:"default_actor_id"`
}

type NATSConfig struct {
	URL    string `yaml:"url"`
	Stream string `yaml:"stream"`
}

// LeagueRules are the league-wide roster limits
type LeagueRules struct {
	JerseyMin       int `yaml:"jersey_min"`
	JerseyMax       int `yaml:"jersey_max"`
	CoverageMinimum int `yaml:"coverage_minimum"`
}

type RelayConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int32         `yaml:"batch_size"`
	MaxRetries   int           `yaml:"max_retries"`
}

type GatewayConfig struct {
	Port    string `yaml:"port"`
	Durable string `yaml:"durable"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the settings used when neither file nor env say otherwise
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		NATS:   NATSConfig{URL: "nats://localhost:4222", Stream: "ROSTER_EVENTS"},
		Rules:  LeagueRules{JerseyMin: 0, JerseyMax: 99, CoverageMinimum: 2},
		Relay:  RelayConfig{PollInterval: 5 * time.Second, BatchSize: 100, MaxRetries: 3},
		Gateway: GatewayConfig{
			Port:    "8081",
			Durable: "roster-gateway",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadDotEnv loads .env into the environment when present
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
}

// Load reads the YAML file at path (or RULES_FILE when path is empty) over
// the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("RULES_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GATEWAY_PORT"); v != "" {
		cfg.Gateway.Port = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("DEFAULT_ACTOR_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEFAULT_ACTOR_ID %q: %w", v, err)
		}
		cfg.Server.DefaultActorID = id
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		cfg.Log.Pretty, _ = strconv.ParseBool(v)
	}

	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (r LeagueRules) Validate() error {
	var errs []error
	if r.JerseyMin < 0 {
		errs = append(errs, fmt.Errorf("rules.jersey_min must be at least 0, got %d", r.JerseyMin))
	}
	if r.JerseyMax < r.JerseyMin {
		errs = append(errs, fmt.Errorf("rules.jersey_max %d is below jersey_min %d", r.JerseyMax, r.JerseyMin))
	}
	if r.CoverageMinimum < 1 {
		errs = append(errs, fmt.Errorf("rules.coverage_minimum must be at least 1, got %d", r.CoverageMinimum))
	}
	return errors.Join(errs...)
}

// SetupLogging applies the level and output format to the global logger
func (c LogConfig) SetupLogging() {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
