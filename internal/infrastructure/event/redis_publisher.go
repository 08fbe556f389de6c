package event

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers a relayed event payload to a channel
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes outbox messages through Redis pub/sub
type RedisPublisher struct {
	client redis.UniversalClient
}

// NewRedisPublisher creates a publisher on an existing Redis client
func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends payload to channel. Having no subscribers is not an error.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish to %s: %w", channel, err)
	}
	return nil
}

// Ensure RedisPublisher implements Publisher
var _ Publisher = (*RedisPublisher)(nil)
