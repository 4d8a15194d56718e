package awardrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	awardhandlers "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/handlers"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	awardmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/award"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// AwardRouter wires award event topics to their handlers on the shared
// Watermill router. Produced messages carry their publish topic in metadata;
// the router resolves it and publishes through the event bus.
type AwardRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewAwardRouter creates a new AwardRouter.
func NewAwardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *AwardRouter {
	return &AwardRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the award handlers.
func (r *AwardRouter) Configure(routerCtx context.Context, awardService awardservice.Service, metrics awardmetrics.AwardMetrics) error {
	awardHandlers := awardhandlers.NewAwardHandlers(awardService, r.logger, r.tracer, r.helper, metrics)

	if err := r.RegisterHandlers(routerCtx, awardHandlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *AwardRouter) RegisterHandlers(ctx context.Context, handlers awardhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		awardevents.AwardAllocationRequestedV1: handlers.HandleAwardAllocationRequested,
		awardevents.AwardFinalizeRequestedV1:   handlers.HandleAwardFinalizeRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("award.%s", topic)
		handler := r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message", attr.String("message_id", msg.UUID), attr.Any("error", err))
					return nil, err
				}
				for _, m := range messages {
					publishTopic := r.getPublishTopic(handlerName, m)

					if publishTopic == "" {
						r.logger.Error("router failed to resolve publish topic - MESSAGE DROPPED",
							attr.String("handler", handlerName),
							attr.String("msg_uuid", m.UUID),
							attr.String("correlation_id", m.Metadata.Get("correlation_id")),
						)
						continue
					}

					r.logger.InfoContext(ctx, "publishing message",
						attr.String("topic", publishTopic),
						attr.String("handler", handlerName),
						attr.String("correlation_id", m.Metadata.Get("correlation_id")),
					)

					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
		handler.AddMiddleware(utils.CommonMetadataMiddleware("award"))
	}
	return nil
}

// Close shuts down the router.
func (r *AwardRouter) Close() error {
	return r.Router.Close()
}

// getPublishTopic resolves the topic to publish for a given handler's returned message.
func (r *AwardRouter) getPublishTopic(handlerName string, msg *message.Message) string {
	switch handlerName {
	case "award." + awardevents.AwardAllocationRequestedV1,
		"award." + awardevents.AwardFinalizeRequestedV1:
		// Each handler emits a completed or failed message; the message
		// carries its own topic.
		return msg.Metadata.Get("topic")

	default:
		r.logger.Warn("unknown handler in topic resolution",
			attr.String("handler", handlerName),
		)
		return msg.Metadata.Get("topic")
	}
}
