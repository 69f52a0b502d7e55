package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Subscriber opens Pub/Sub subscriptions; *redis.Client satisfies it.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Broadcaster listens for catalog events on Redis Pub/Sub and forwards them to all clients.
type Broadcaster struct {
	redis   Subscriber
	hub     *ws.Hub
	channel string
	logger  zerolog.Logger
}

// NewBroadcaster creates a Pub/Sub powered catalog broadcaster.
func NewBroadcaster(redis Subscriber, hub *ws.Hub, channel string, logger zerolog.Logger) *Broadcaster {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Broadcaster{
		redis:   redis,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "catalog_broadcaster").Logger(),
	}
}

// Run subscribes to the event channel and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.Forward(msg.Payload)
		}
	}
}

// Forward decodes one published event and broadcasts it as a catalog_update message.
func (b *Broadcaster) Forward(payload string) {
	var evt catalog.Event
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode catalog event payload")
		return
	}

	msg, err := ws.NewMessage(ws.TypeCatalogUpdate, ws.CatalogUpdatePayload{
		Event:      string(evt.Type),
		QuestionID: evt.QuestionID,
		Category:   evt.Category,
		At:         evt.At,
	})
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to marshal catalog WS payload")
		return
	}

	if err := b.hub.BroadcastAll(msg); err != nil {
		b.logger.Warn().Err(err).Msg("failed to broadcast catalog update")
	}
}
