// Package handlerwrapper adapts typed transformation handlers into watermill
// message handlers, folding in unmarshalling, tracing, logging, and metrics.
package handlerwrapper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// Result is one outgoing event produced by a handler: the payload and the
// topic it publishes to.
type Result struct {
	Topic   string
	Payload any
}

// ReturningMetrics records handler-level telemetry. A nil value disables it.
type ReturningMetrics interface {
	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)
}

// WrapTransformingTyped turns a pure payload-in, results-out handler into a
// watermill HandlerFunc. The incoming payload is unmarshalled into T; each
// returned Result becomes an outgoing message tagged with its topic.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics ReturningMetrics,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		if metrics != nil {
			metrics.RecordHandlerAttempt(handlerName)
		}
		start := time.Now()
		defer func() {
			if metrics != nil {
				metrics.RecordHandlerDuration(handlerName, time.Since(start).Seconds())
			}
		}()

		correlationID := msg.Metadata.Get("correlation_id")
		ctx = attr.WithCorrelationID(ctx, correlationID)

		logger.DebugContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		payload := new(T)
		if err := helpers.UnmarshalPayload(msg, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(handlerName)
			}
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		results, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, handlerName+" failed",
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			span.RecordError(err)
			if metrics != nil {
				metrics.RecordHandlerFailure(handlerName)
			}
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		out := make([]*message.Message, 0, len(results))
		for _, r := range results {
			resultMsg, err := helpers.CreateResultMessage(msg, r.Payload, r.Topic)
			if err != nil {
				if metrics != nil {
					metrics.RecordHandlerFailure(handlerName)
				}
				return nil, fmt.Errorf("%s: failed to create result message for %s: %w", handlerName, r.Topic, err)
			}
			out = append(out, resultMsg)
		}

		if metrics != nil {
			metrics.RecordHandlerSuccess(handlerName)
		}
		return out, nil
	}
}
