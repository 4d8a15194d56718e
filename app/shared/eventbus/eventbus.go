// Package eventbus provides the NATS JetStream-backed watermill transport
// shared by every module.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	nats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/trace"

	eventbusmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/eventbus"
)

// EventBus is the transport handed to module routers. It satisfies both
// watermill roles so a single value can be wired as subscriber and
// publisher.
type EventBus interface {
	message.Publisher
	message.Subscriber

	// CreateStream ensures a JetStream stream exists covering
	// "<streamName>.>" subjects. Idempotent.
	CreateStream(ctx context.Context, streamName string) error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger
	metrics    eventbusmetrics.EventBusMetrics
	tracer     trace.Tracer

	streamMutex    sync.Mutex
	createdStreams map[string]bool
}

// NewEventBus connects to NATS and builds the watermill publisher and
// subscriber over JetStream. appName scopes the subscriber queue group so
// several processes of the same service share consumption.
func NewEventBus(
	ctx context.Context,
	natsURL string,
	logger *slog.Logger,
	appName string,
	metrics eventbusmetrics.EventBusMetrics,
	tracer trace.Tracer,
) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: appName,
			Unmarshaler:      marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("Error closing publisher during setup failure", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	if metrics == nil {
		metrics = eventbusmetrics.NewNoop()
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		metrics:        metrics,
		tracer:         tracer,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish sends messages to a topic, recording per-topic metrics.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	ctx := context.Background()
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		ctx = msg.Context()
	}

	if err := eb.publisher.Publish(topic, messages...); err != nil {
		eb.metrics.RecordPublishError(ctx, topic)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	eb.metrics.RecordPublish(ctx, topic)
	return nil
}

// Subscribe opens a subscription on a topic.
func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	eb.metrics.RecordSubscribe(ctx, topic)
	return messages, nil
}

// CreateStream ensures a stream named streamName exists with the subject
// space "<streamName>.>", adding the subject to an existing stream when
// needed.
func (eb *eventBus) CreateStream(ctx context.Context, streamName string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	subject := streamName + ".>"

	stream, err := eb.js.Stream(ctx, streamName)
	if err != nil && err != jetstream.ErrStreamNotFound {
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	if err == jetstream.ErrStreamNotFound {
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		eb.logger.Info("Stream created",
			slog.String("stream_name", streamName),
			slog.String("subject", subject),
		)
	} else {
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info: %w", err)
		}

		found := false
		for _, existing := range info.Config.Subjects {
			if existing == subject {
				found = true
				break
			}
		}
		if !found {
			info.Config.Subjects = append(info.Config.Subjects, subject)
			if _, err := eb.js.UpdateStream(ctx, info.Config); err != nil {
				return fmt.Errorf("failed to update stream with new subject: %w", err)
			}
			eb.logger.Info("Stream updated with new subject",
				slog.String("stream_name", streamName),
				slog.String("subject", subject),
			)
		}
	}

	eb.createdStreams[streamName] = true
	return nil
}

// Close releases watermill and NATS resources.
func (eb *eventBus) Close() error {
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			eb.logger.Error("Error closing NATS publisher", slog.Any("error", err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("Error closing NATS subscriber", slog.Any("error", err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return nil
}
