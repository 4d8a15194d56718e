package rulesetrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	rulesethandlers "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/handlers"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	rulesetmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// RulesetRouter wires ruleset event topics to their handlers on the shared
// Watermill router. Produced messages carry their publish topic in metadata;
// the router resolves it and publishes through the event bus.
type RulesetRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewRulesetRouter creates a new RulesetRouter.
func NewRulesetRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *RulesetRouter {
	return &RulesetRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the ruleset handlers.
func (r *RulesetRouter) Configure(routerCtx context.Context, rulesetService rulesetservice.Service, metrics rulesetmetrics.RulesetMetrics) error {
	rulesetHandlers := rulesethandlers.NewRulesetHandlers(rulesetService, r.logger, r.tracer, r.helper, metrics)

	if err := r.RegisterHandlers(routerCtx, rulesetHandlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *RulesetRouter) RegisterHandlers(ctx context.Context, handlers rulesethandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		rulesetevents.RulesetUpsertRequestedV1:         handlers.HandleRulesetUpsertRequested,
		rulesetevents.RulesetCategoriesSaveRequestedV1: handlers.HandleCategoriesSaveRequested,
		rulesetevents.RulesetGroupsSaveRequestedV1:     handlers.HandleGroupsSaveRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("ruleset.%s", topic)
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
		handler.AddMiddleware(utils.CommonMetadataMiddleware("ruleset"))
	}
	return nil
}

// Close shuts down the router.
func (r *RulesetRouter) Close() error {
	return r.Router.Close()
}

// getPublishTopic resolves the topic to publish for a given handler's returned message.
func (r *RulesetRouter) getPublishTopic(handlerName string, msg *message.Message) string {
	switch handlerName {
	case "ruleset." + rulesetevents.RulesetUpsertRequestedV1,
		"ruleset." + rulesetevents.RulesetCategoriesSaveRequestedV1,
		"ruleset." + rulesetevents.RulesetGroupsSaveRequestedV1:
		// Save handlers emit a confirmation plus the updated fan-out, or a
		// failure; each message carries its own topic.
		return msg.Metadata.Get("topic")

	default:
		r.logger.Warn("unknown handler in topic resolution",
			attr.String("handler", handlerName),
		)
		return msg.Metadata.Get("topic")
	}
}
