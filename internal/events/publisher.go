// Package events carries catalog mutations over Redis Pub/Sub to WebSocket subscribers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// DefaultChannel is the Pub/Sub channel catalog events travel on.
const DefaultChannel = "catalog:events"

// RedisPublisher publishes catalog events as JSON onto a Redis channel.
type RedisPublisher struct {
	client  redis.Cmdable
	channel string
}

var _ catalog.EventPublisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client redis.Cmdable, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish encodes evt and sends it to the channel.
func (p *RedisPublisher) Publish(ctx context.Context, evt catalog.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode catalog event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish catalog event: %w", err)
	}
	return nil
}
