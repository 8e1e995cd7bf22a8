// Package notifier fans order change notifications out to every replica over
// Redis pub/sub. The payload is the id of the changed order.
package notifier

import (
	"context"

	"github.com/fekuna/omnipos-order-service/pkg/cache"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"go.uber.org/zap"
)

const DefaultChannel = "orders:changed"

type RedisNotifier struct {
	client  *cache.RedisClient
	channel string
	logger  logger.ZapLogger
}

func NewRedisNotifier(client *cache.RedisClient, channel string, log logger.ZapLogger) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

func (n *RedisNotifier) Notify(ctx context.Context, orderID string) error {
	return n.client.Publish(ctx, n.channel, []byte(orderID))
}

// Listen forwards notifications until ctx is done, then closes the channel.
func (n *RedisNotifier) Listen(ctx context.Context) <-chan string {
	pubsub := n.client.Subscribe(ctx, n.channel)
	out := make(chan string, 16)

	go func() {
		defer close(out)
		defer pubsub.Close()

		n.logger.Info("Listening for order changes", zap.String("channel", n.channel))
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
