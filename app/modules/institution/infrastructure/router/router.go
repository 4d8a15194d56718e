package institutionrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	institutionhandlers "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/handlers"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	institutionmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// InstitutionRouter wires institution event topics to their handlers on the
// shared Watermill router. Produced messages carry their publish topic in
// metadata; the router resolves it and publishes through the event bus.
type InstitutionRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewInstitutionRouter creates a new InstitutionRouter.
func NewInstitutionRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *InstitutionRouter {
	return &InstitutionRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the institution handlers.
func (r *InstitutionRouter) Configure(routerCtx context.Context, institutionService institutionservice.Service, metrics institutionmetrics.InstitutionMetrics) error {
	institutionHandlers := institutionhandlers.NewInstitutionHandlers(institutionService, r.logger, r.tracer, r.helper, metrics)

	if err := r.RegisterHandlers(routerCtx, institutionHandlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *InstitutionRouter) RegisterHandlers(ctx context.Context, handlers institutionhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		institutionevents.InstitutionAllocationRequestedV1: handlers.HandleInstitutionAllocationRequested,
		institutionevents.InstitutionFinalizeRequestedV1:   handlers.HandleInstitutionFinalizeRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("institution.%s", topic)
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
		handler.AddMiddleware(utils.CommonMetadataMiddleware("institution"))
	}
	return nil
}

// Close shuts down the router.
func (r *InstitutionRouter) Close() error {
	return r.Router.Close()
}

// getPublishTopic resolves the topic to publish for a given handler's returned message.
func (r *InstitutionRouter) getPublishTopic(handlerName string, msg *message.Message) string {
	switch handlerName {
	case "institution." + institutionevents.InstitutionAllocationRequestedV1,
		"institution." + institutionevents.InstitutionFinalizeRequestedV1:
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
