package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/hospital-api/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

type Config struct {
	URL            string
	ChannelPrefix  string
	PublishTimeout time.Duration
	MaxRetries     int
	PoolSize       int
	MinIdleConns   int
}

// Publisher publishes domain events on Redis pub/sub channels named
// "<prefix>.<event type>".
type Publisher struct {
	client  *redis.Client
	cb      *circuitbreaker.CircuitBreaker
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPublisher parses the URL and builds the client. Connectivity is verified
// with a ping bounded by ctx.
func NewPublisher(ctx context.Context, config Config, logger zerolog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	if config.MinIdleConns > 0 {
		opts.MinIdleConns = config.MinIdleConns
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newPublisher(client, config, logger), nil
}

func newPublisher(client *redis.Client, config Config, logger zerolog.Logger) *Publisher {
	if config.PublishTimeout <= 0 {
		config.PublishTimeout = 500 * time.Millisecond
	}

	return &Publisher{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-publisher",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
		prefix:  config.ChannelPrefix,
		timeout: config.PublishTimeout,
		logger:  logger.With().Str("component", "redis-publisher").Logger(),
	}
}

// Channel returns the channel an event type is published on.
func (p *Publisher) Channel(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

func (p *Publisher) Publish(ctx context.Context, event messaging.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.cb.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()

		if err := p.client.Publish(ctx, p.Channel(event.Type), payload).Err(); err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.Type, err)
		}
		p.logger.Debug().Str("event_type", event.Type).Msg("event published")
		return nil
	})
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
