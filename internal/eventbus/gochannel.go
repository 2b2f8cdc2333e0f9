package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// InMemoryBus is a process-local EventBus backed by watermill's gochannel
// pubsub. Used in tests and single-process deployments without NATS.
type InMemoryBus struct {
	pubsub *gochannel.GoChannel
}

var _ EventBus = (*InMemoryBus)(nil)

// NewInMemoryBus builds a gochannel-backed bus.
func NewInMemoryBus(logger *slog.Logger) *InMemoryBus {
	return &InMemoryBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
	}
}

func (b *InMemoryBus) Publish(topic string, messages ...*message.Message) error {
	if topic == "" {
		for _, msg := range messages {
			msgTopic := msg.Metadata.Get(TopicMetadataKey)
			if msgTopic == "" {
				return fmt.Errorf("message %s has no destination topic", msg.UUID)
			}
			if err := b.pubsub.Publish(msgTopic, msg); err != nil {
				return err
			}
		}
		return nil
	}
	return b.pubsub.Publish(topic, messages...)
}

func (b *InMemoryBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

func (b *InMemoryBus) Close() error {
	return b.pubsub.Close()
}
