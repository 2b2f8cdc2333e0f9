// Package eventbus provides the NATS JetStream transport every module
// publishes and subscribes through.
package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicMetadataKey names the metadata field carrying a message's destination
// topic when the publish call itself does not name one.
const TopicMetadataKey = "topic"

// EventBus is the messaging surface handed to modules. It satisfies both
// message.Publisher and message.Subscriber so it can plug straight into a
// watermill router.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}
