package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type syncMessage struct {
	Origin string `json:"origin"`
	Key    string `json:"key"`
}

// RedisBridge shares change notifications between processes that use the
// same record store. Local writes are published on a Redis channel; messages
// from other processes are re-raised on the local bus.
type RedisBridge struct {
	client  *redis.Client
	channel string
	origin  string
	local   *Bus
	log     *slog.Logger
	ready   chan struct{}
}

var _ Notifier = (*RedisBridge)(nil)

func NewRedisBridge(client *redis.Client, channel string, local *Bus, log *slog.Logger) *RedisBridge {
	if log == nil {
		log = slog.Default()
	}
	return &RedisBridge{
		client:  client,
		channel: channel,
		origin:  uuid.New().String(),
		local:   local,
		log:     log,
		ready:   make(chan struct{}),
	}
}

// Notify raises the change locally, then publishes it to other processes.
// Publish failures are logged: remote views will catch up on their next
// notification.
func (r *RedisBridge) Notify(ctx context.Context, key string) {
	r.local.Notify(ctx, key)

	payload, err := json.Marshal(syncMessage{Origin: r.origin, Key: key})
	if err != nil {
		r.log.Error("failed to encode sync message", "key", key, "error", err)
		return
	}

	err = r.client.Publish(ctx, r.channel, payload).Err()
	if err != nil {
		r.log.Warn("failed to publish sync message", "key", key, "channel", r.channel, "error", err)
	}
}

// Ready is closed once Run has subscribed to the channel.
func (r *RedisBridge) Ready() <-chan struct{} {
	return r.ready
}

// Run relays remote notifications to the local bus until ctx is done.
func (r *RedisBridge) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer func() {
		closeErr := pubsub.Close()
		if closeErr != nil {
			r.log.Warn("failed to close sync subscription", "error", closeErr)
		}
	}()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	close(r.ready)
	r.log.Info("change sync started", "channel", r.channel, "origin", r.origin)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var m syncMessage
			err := json.Unmarshal([]byte(msg.Payload), &m)
			if err != nil {
				r.log.Warn("dropping malformed sync message", "payload", msg.Payload, "error", err)
				continue
			}
			if m.Origin == r.origin || m.Key == "" {
				continue
			}
			r.local.Notify(ctx, m.Key)
		}
	}
}
