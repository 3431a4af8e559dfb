package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type Config struct {
	PollInterval time.Duration
	BatchSize    int32
	MaxRetries   int
	RetryDelay   time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		BatchSize:    100,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}
}

// Store is what the relay needs from persistence
type Store interface {
	ClaimBatch(ctx context.Context, limit int32, fn func([]Event) []uuid.UUID) (int, error)
}

// Relay moves committed outbox rows onto the message bus
type Relay struct {
	store     Store
	publisher EventPublisher
	config    Config
	clock     clockwork.Clock

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewRelay(store Store, publisher EventPublisher, cfg Config, clock clockwork.Clock) *Relay {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		config:    cfg,
		clock:     clock,
		stopChan:  make(chan struct{}),
	}
}

func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("outbox relay already running")
	}
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(ctx)

	log.Info().
		Dur("poll_interval", r.config.PollInterval).
		Int32("batch_size", r.config.BatchSize).
		Msg("outbox relay started")

	return nil
}

func (r *Relay) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return fmt.Errorf("outbox relay not running")
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopChan)
	r.wg.Wait()

	log.Info().Msg("outbox relay stopped")
	return nil
}

func (r *Relay) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := r.clock.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	// Process immediately on start
	r.ProcessOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.Chan():
			r.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce relays a single batch and returns how many events were published
func (r *Relay) ProcessOnce(ctx context.Context) int {
	var published int
	claimed, err := r.store.ClaimBatch(ctx, r.config.BatchSize, func(events []Event) []uuid.UUID {
		sent := make([]uuid.UUID, 0, len(events))
		for _, event := range events {
			if err := r.publishWithRetry(ctx, event); err != nil {
				log.Error().
					Err(err).
					Str("event_id", event.ID.String()).
					Str("event_type", string(event.Type)).
					Msg("failed to publish outbox event")
				continue
			}
			sent = append(sent, event.ID)
		}
		published = len(sent)
		return sent
	})
	if err != nil {
		log.Error().Err(err).Msg("outbox batch failed")
		return 0
	}

	if claimed > 0 {
		log.Info().
			Int("total", claimed).
			Int("published", published).
			Msg("processed outbox events")
	}
	return published
}

func (r *Relay) publishWithRetry(ctx context.Context, event Event) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(r.config.RetryDelay * time.Duration(attempt)):
			}
		}

		if err := r.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Warn().
				Err(err).
				Str("event_id", event.ID.String()).
				Int("attempt", attempt+1).
				Msg("failed to publish event, retrying")
			continue
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
