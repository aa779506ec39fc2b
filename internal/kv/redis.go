package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/curiohq/curio/internal/logger"
)

// EventsChannel is the pub/sub channel carrying change notices between
// instances sharing the same Redis database.
const EventsChannel = "curio:kv:events"

// changeEvent is the wire format published after every write or remove.
// Origin lets subscribers drop notices for their own writes, matching
// the storage-event rule that the writing context is not notified.
type changeEvent struct {
	Origin string `json:"origin"`
	Key    string `json:"key"`
}

// Redis is a Store backed by a shared Redis database. Every mutation is
// followed by a best-effort publish on EventsChannel so that other
// instances can re-read the changed key.
type Redis struct {
	client *goredis.Client
	origin string
	logger logger.Logger
}

func NewRedis(client *goredis.Client, log logger.Logger) *Redis {
	return &Redis{
		client: client,
		origin: uuid.NewString(),
		logger: log,
	}
}

// Origin returns this instance's identity as seen on EventsChannel.
func (r *Redis) Origin() string { return r.origin }

func (r *Redis) Read(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Write(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	r.announce(ctx, key)
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	r.announce(ctx, key)
	return nil
}

// announce publishes a change notice. Publish failures are logged and
// swallowed: the write itself already succeeded, and remote instances
// degrade to stale reads rather than errors.
func (r *Redis) announce(ctx context.Context, key string) {
	data, err := json.Marshal(changeEvent{Origin: r.origin, Key: key})
	if err != nil {
		r.logger.Warn("failed to marshal change event", logger.Error(err))
		return
	}
	if err := r.client.Publish(ctx, EventsChannel, data).Err(); err != nil {
		r.logger.Warn("failed to publish change event",
			logger.String("key", key),
			logger.Error(err))
	}
}

// Watch subscribes to EventsChannel and invokes fn for every change made
// by another instance. Self-originated events are filtered out. The
// returned stop function closes the subscription and ends the receive
// loop.
func (r *Redis) Watch(ctx context.Context, fn func(key string)) (func(), error) {
	sub := r.client.Subscribe(ctx, EventsChannel)

	// Force the subscription to be established before returning so a
	// write performed right after Watch cannot be missed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", EventsChannel, err)
	}

	ch := sub.Channel()
	go func() {
		for msg := range ch {
			var ev changeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.logger.Warn("dropping malformed change event", logger.Error(err))
				continue
			}
			if ev.Origin == r.origin {
				continue
			}
			fn(ev.Key)
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			r.logger.Warn("failed to close kv subscription", logger.Error(err))
		}
	}, nil
}
