package realtime

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"quarryledger/pkg/logger"
)

const channelPrefix = "quarryledger:changed:"

// RedisFanout bridges hub events across processes through Redis
// pub/sub, so every running instance pushes fresh snapshots after a
// write made anywhere.
type RedisFanout struct {
	client *redis.Client
	hub    *Hub
	cancel context.CancelFunc
	unsubs []func()
}

// NewRedisFanout connects the hub to a Redis instance.
func NewRedisFanout(client *redis.Client, hub *Hub) *RedisFanout {
	return &RedisFanout{client: client, hub: hub}
}

// Start relays local publishes to Redis and remote publishes back into
// the local hub. It returns after the subscriber goroutine is running.
func (f *RedisFanout) Start(ctx context.Context) error {
	ctx, f.cancel = context.WithCancel(ctx)

	collections := []Collection{
		CollectionUsers,
		CollectionProducts,
		CollectionQuarries,
		CollectionQuarryPrices,
		CollectionCustomers,
		CollectionTransactions,
		CollectionPriceHistory,
		CollectionAuditLogs,
	}

	channels := make([]string, 0, len(collections))
	for _, c := range collections {
		channels = append(channels, channelPrefix+string(c))
	}

	sub := f.client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	for _, c := range collections {
		collection := c
		unsub := f.hub.Subscribe(collection, func(e Event) {
			if e.remote {
				return
			}
			if err := f.client.Publish(ctx, channelPrefix+string(collection), "1").Err(); err != nil {
				logger.Warn(ctx, "redis fanout publish failed", "collection", collection, "error", err)
			}
		})
		f.unsubs = append(f.unsubs, unsub)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				collection := Collection(msg.Channel[len(channelPrefix):])
				f.hub.dispatch(Event{Collection: collection, At: time.Now().UTC(), remote: true})
			}
		}
	}()

	return nil
}

// Stop detaches from the hub and shuts down the subscriber.
func (f *RedisFanout) Stop() {
	for _, unsub := range f.unsubs {
		unsub()
	}
	f.unsubs = nil
	if f.cancel != nil {
		f.cancel()
	}
}
