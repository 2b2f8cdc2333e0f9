// Package utils holds the message construction helpers shared by handlers
// across modules.
package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey names the metadata field carrying a result message's
// destination topic; the router's publish step reads it.
const TopicMetadataKey = "topic"

// Helpers builds and decodes watermill messages.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, out any) error
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

// MessageHelpers is the production Helpers implementation.
type MessageHelpers struct {
	Logger *slog.Logger
}

var _ Helpers = (*MessageHelpers)(nil)

func NewHelpers(logger *slog.Logger) *MessageHelpers {
	return &MessageHelpers{Logger: logger}
}

// UnmarshalPayload decodes a message body into out.
func (h *MessageHelpers) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// CreateResultMessage builds a new message carrying payload, propagating the
// original message's correlation ID and tagging the destination topic.
func (h *MessageHelpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	newMsg, err := h.CreateNewMessage(payload, topic)
	if err != nil {
		return nil, err
	}

	correlationID := original.Metadata.Get(middleware.CorrelationIDMetadataKey)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	newMsg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)

	if causedBy := original.Metadata.Get(TopicMetadataKey); causedBy != "" {
		newMsg.Metadata.Set("caused_by", causedBy)
	}
	return newMsg, nil
}

// CreateNewMessage builds a fresh message with a new UUID and correlation ID.
func (h *MessageHelpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	msg.Metadata.Set(middleware.CorrelationIDMetadataKey, watermill.NewUUID())
	msg.Metadata.Set(TopicMetadataKey, topic)
	return msg, nil
}
