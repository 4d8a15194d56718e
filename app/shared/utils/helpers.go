// Package utils carries the small message-construction helpers handlers
// lean on.
package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers abstracts message creation and payload decoding so handlers stay
// declarative and tests can fake the plumbing.
type Helpers interface {
	CreateResultMessage(originalMsg *message.Message, payload interface{}, topic string) (*message.Message, error)
	CreateNewMessage(payload interface{}, topic string) (*message.Message, error)
	UnmarshalPayload(msg *message.Message, target interface{}) error
}

// Helper is the production Helpers implementation.
type Helper struct {
	logger *slog.Logger
}

// NewHelper builds a Helper.
func NewHelper(logger *slog.Logger) *Helper {
	return &Helper{logger: logger}
}

// CreateResultMessage builds a follow-up message for topic carrying payload,
// inheriting the correlation ID and causation chain of originalMsg.
func (h *Helper) CreateResultMessage(originalMsg *message.Message, payload interface{}, topic string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	newMsg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	newMsg.Metadata.Set("topic", topic)

	if originalMsg != nil {
		if correlationID := middleware.MessageCorrelationID(originalMsg); correlationID != "" {
			middleware.SetCorrelationID(correlationID, newMsg)
		}
		newMsg.Metadata.Set("causation_id", originalMsg.UUID)
		newMsg.SetContext(originalMsg.Context())
	}

	if middleware.MessageCorrelationID(newMsg) == "" {
		middleware.SetCorrelationID(watermill.NewUUID(), newMsg)
	}

	return newMsg, nil
}

// CreateNewMessage builds a message for topic with a fresh correlation ID.
// Used by entry points that start a flow rather than continue one.
func (h *Helper) CreateNewMessage(payload interface{}, topic string) (*message.Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	newMsg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	newMsg.Metadata.Set("topic", topic)
	middleware.SetCorrelationID(watermill.NewUUID(), newMsg)

	return newMsg, nil
}

// UnmarshalPayload decodes a message payload into target.
func (h *Helper) UnmarshalPayload(msg *message.Message, target interface{}) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload into %T: %w", target, err)
	}
	return nil
}
