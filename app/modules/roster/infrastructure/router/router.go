package rosterrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rosterhandlers "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/handlers"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	rostermetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/roster"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// RosterRouter wires roster event topics to their handlers on the shared
// Watermill router. Produced messages carry their publish topic in metadata;
// the router resolves it and publishes through the event bus.
type RosterRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewRosterRouter creates a new RosterRouter.
func NewRosterRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *RosterRouter {
	return &RosterRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the roster handlers.
func (r *RosterRouter) Configure(routerCtx context.Context, rosterService rosterservice.Service, metrics rostermetrics.RosterMetrics) error {
	rosterHandlers := rosterhandlers.NewRosterHandlers(rosterService, r.logger, r.tracer, r.helper, metrics)

	if err := r.RegisterHandlers(routerCtx, rosterHandlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *RosterRouter) RegisterHandlers(ctx context.Context, handlers rosterhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		rosterevents.RosterImportRequestedV1: handlers.HandleRosterImportRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("roster.%s", topic)
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
		handler.AddMiddleware(utils.CommonMetadataMiddleware("roster"))
	}
	return nil
}

// Close shuts down the router.
func (r *RosterRouter) Close() error {
	return r.Router.Close()
}

// getPublishTopic resolves the topic to publish for a given handler's returned message.
func (r *RosterRouter) getPublishTopic(handlerName string, msg *message.Message) string {
	switch handlerName {
	case "roster." + rosterevents.RosterImportRequestedV1:
		// Import emits completed plus updated, or failed; each message
		// carries its own topic.
		return msg.Metadata.Get("topic")

	default:
		r.logger.Warn("unknown handler in topic resolution",
			attr.String("handler", handlerName),
		)
		return msg.Metadata.Get("topic")
	}
}
