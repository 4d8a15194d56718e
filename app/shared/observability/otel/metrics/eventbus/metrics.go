// Package eventbusmetrics records publish/subscribe activity on the event bus.
package eventbusmetrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func topicAttr(topic string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("topic", topic)}
}

// EventBusMetrics is implemented by the otel recorder and a test noop.
type EventBusMetrics interface {
	RecordPublish(ctx context.Context, topic string)
	RecordPublishError(ctx context.Context, topic string)
	RecordSubscribe(ctx context.Context, topic string)
}

type otelMetrics struct {
	published     metric.Int64Counter
	publishErrors metric.Int64Counter
	subscriptions metric.Int64Counter
}

// New builds the otel-backed recorder on the given meter.
func New(meter metric.Meter) (EventBusMetrics, error) {
	published, err := meter.Int64Counter("eventbus_messages_published_total")
	if err != nil {
		return nil, err
	}
	publishErrors, err := meter.Int64Counter("eventbus_publish_errors_total")
	if err != nil {
		return nil, err
	}
	subscriptions, err := meter.Int64Counter("eventbus_subscriptions_total")
	if err != nil {
		return nil, err
	}
	return &otelMetrics{
		published:     published,
		publishErrors: publishErrors,
		subscriptions: subscriptions,
	}, nil
}

func (m *otelMetrics) RecordPublish(ctx context.Context, topic string) {
	m.published.Add(ctx, 1, metric.WithAttributes(topicAttr(topic)...))
}

func (m *otelMetrics) RecordPublishError(ctx context.Context, topic string) {
	m.publishErrors.Add(ctx, 1, metric.WithAttributes(topicAttr(topic)...))
}

func (m *otelMetrics) RecordSubscribe(ctx context.Context, topic string) {
	m.subscriptions.Add(ctx, 1, metric.WithAttributes(topicAttr(topic)...))
}

// NoOp discards all recordings.
type NoOp struct{}

func NewNoop() EventBusMetrics { return &NoOp{} }

func (*NoOp) RecordPublish(context.Context, string)      {}
func (*NoOp) RecordPublishError(context.Context, string) {}
func (*NoOp) RecordSubscribe(context.Context, string)    {}
