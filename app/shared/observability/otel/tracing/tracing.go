// Package tracing provides the watermill middleware that opens a span per
// handled message.
package tracing

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceHandler wraps every handler invocation in a span carrying the
// message id and correlation id, and propagates the span context to the
// handler through the message context.
func TraceHandler(tracer trace.Tracer) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx, span := tracer.Start(msg.Context(), "message.handle", trace.WithAttributes(
				attribute.String("message_id", msg.UUID),
				attribute.String("correlation_id", middleware.MessageCorrelationID(msg)),
			))
			defer span.End()

			msg.SetContext(ctx)

			produced, err := h(msg)
			if err != nil {
				span.RecordError(err)
			}
			return produced, err
		}
	}
}
