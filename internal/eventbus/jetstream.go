package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// JetStreamBus is the production EventBus. Streams are provisioned lazily:
// the first publish or subscribe on a topic ensures a stream named after the
// topic's leading segment exists, covering every subject under it.
type JetStreamBus struct {
	logger     *slog.Logger
	wmLogger   watermill.LoggerAdapter
	conn       *nc.Conn
	js         nc.JetStreamContext
	publisher  *wmnats.Publisher
	subscriber *wmnats.Subscriber

	mu       sync.Mutex
	provided map[string]struct{}
}

var _ EventBus = (*JetStreamBus)(nil)

// NewJetStreamBus connects to NATS and builds the watermill publisher and
// subscriber pair backed by JetStream.
func NewJetStreamBus(natsURL string, logger *slog.Logger) (*JetStreamBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("NATS subscription error",
					slog.String("subject", s.Subject),
					slog.String("queue", s.Queue),
					slog.Any("error", err),
				)
				return
			}
			logger.Error("NATS connection error", slog.Any("error", err))
		}),
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &wmnats.NATSMarshaler{},
			JetStream: wmnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         natsURL,
			NatsOptions: options,
			Unmarshaler: &wmnats.NATSMarshaler{},
			JetStream: wmnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS subscriber: %w", err)
	}

	return &JetStreamBus{
		logger:     logger,
		wmLogger:   wmLogger,
		conn:       conn,
		js:         js,
		publisher:  publisher,
		subscriber: subscriber,
		provided:   map[string]struct{}{},
	}, nil
}

// Publish ensures the backing stream exists and hands off to watermill. An
// empty topic routes each message by its metadata topic instead, which is how
// transformation handlers fan out to multiple destinations.
func (b *JetStreamBus) Publish(topic string, messages ...*message.Message) error {
	if topic == "" {
		for _, msg := range messages {
			msgTopic := msg.Metadata.Get(TopicMetadataKey)
			if msgTopic == "" {
				return fmt.Errorf("message %s has no destination topic", msg.UUID)
			}
			if err := b.Publish(msgTopic, msg); err != nil {
				return err
			}
		}
		return nil
	}
	if err := b.ensureStream(topic); err != nil {
		return err
	}
	return b.publisher.Publish(topic, messages...)
}

// Subscribe ensures the backing stream exists and returns the message channel.
func (b *JetStreamBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if err := b.ensureStream(topic); err != nil {
		return nil, err
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts down the publisher, subscriber, and connection.
func (b *JetStreamBus) Close() error {
	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
	}
	b.conn.Close()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (b *JetStreamBus) ensureStream(topic string) error {
	streamName := streamNameForTopic(topic)
	if !isValidStreamName(streamName) {
		return fmt.Errorf("invalid stream name derived from topic %q", topic)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.provided[streamName]; ok {
		return nil
	}

	info, err := b.js.StreamInfo(streamName)
	if err != nil && err != nc.ErrStreamNotFound {
		return fmt.Errorf("failed to get stream info for %s: %w", streamName, err)
	}
	if info == nil {
		_, err = b.js.AddStream(&nc.StreamConfig{
			Name:     streamName,
			Subjects: []string{fmt.Sprintf("%s.>", streamName)},
		})
		if err != nil {
			return fmt.Errorf("failed to add stream %s: %w", streamName, err)
		}
		b.logger.Info("Stream created", slog.String("stream", streamName))
	}

	b.provided[streamName] = struct{}{}
	return nil
}

// streamNameForTopic maps topics like "round.score.submitted.v1" onto the
// "round" stream, whose subject filter covers the whole module.
func streamNameForTopic(topic string) string {
	if i := strings.IndexByte(topic, '.'); i > 0 {
		return topic[:i]
	}
	return topic
}

// isValidStreamName checks a stream name against NATS naming rules: non-empty,
// alphanumeric with hyphens or underscores, not hyphen-terminated.
func isValidStreamName(name string) bool {
	for _, r := range name {
		if !isValidRune(r) {
			return false
		}
	}
	return name != "" && name[0] != '-' && name[len(name)-1] != '-'
}

func isValidRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
