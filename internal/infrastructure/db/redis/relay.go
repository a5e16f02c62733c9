package redis

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// roomPrefix namespaces the pub/sub channels carrying room broadcasts.
// The chat channel URL is the suffix, so no envelope format is needed.
const roomPrefix = "campuschat:room:"

// Relay fans channel broadcasts out across gateway instances over Redis
// pub/sub. Every instance publishes its broadcasts and delivers only
// what it receives back from the subscription, so local and remote
// members of a room see the same stream.
type Relay struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRelay creates a Relay wrapping the given Redis client.
func NewRelay(client *redis.Client, log zerolog.Logger) *Relay {
	return &Relay{client: client, log: log}
}

// Publish sends a room broadcast to all subscribed instances, including
// this one.
func (r *Relay) Publish(ctx context.Context, channelURL string, payload []byte) error {
	return r.client.Publish(ctx, roomPrefix+channelURL, payload).Err()
}

// Listen subscribes to all room broadcasts and invokes deliver for each
// one until ctx is cancelled. Intended to run in its own goroutine.
func (r *Relay) Listen(ctx context.Context, deliver func(channelURL string, payload []byte)) {
	sub := r.client.PSubscribe(ctx, roomPrefix+"*")
	defer func() {
		if err := sub.Close(); err != nil {
			r.log.Warn().Err(err).Msg("relay subscription close failed")
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			channelURL := strings.TrimPrefix(msg.Channel, roomPrefix)
			deliver(channelURL, []byte(msg.Payload))
		}
	}
}
