package institutionhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	institutionmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
)

// InstitutionHandlers handles team prize events.
type InstitutionHandlers struct {
	institutionService institutionservice.Service
	logger             *slog.Logger
	tracer             trace.Tracer
	metrics            institutionmetrics.InstitutionMetrics
	helpers            utils.Helpers
	handlerWrapper     func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc
}

// NewInstitutionHandlers creates a new InstitutionHandlers.
func NewInstitutionHandlers(
	institutionService institutionservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics institutionmetrics.InstitutionMetrics,
) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &InstitutionHandlers{
		institutionService: institutionService,
		logger:             logger,
		tracer:             tracer,
		helpers:            helpers,
		metrics:            metrics,
		handlerWrapper: func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc {
			return handlerWrapper(handlerName, unmarshalTo, handlerFunc, logger, metrics, tracer, helpers)
		},
	}
}

// handlerWrapper is a standalone function that handles common tracing, logging, and metrics for handlers.
func handlerWrapper(
	handlerName string,
	unmarshalTo interface{},
	handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error),
	logger *slog.Logger,
	metrics institutionmetrics.InstitutionMetrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName)
			defer span.End()
		}

		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
		}

		startTime := time.Now()
		defer func() {
			if metrics != nil {
				metrics.RecordHandlerDuration(ctx, handlerName, time.Since(startTime))
			}
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		payloadInstance := unmarshalTo
		if payloadInstance != nil {
			if err := helpers.UnmarshalPayload(msg, payloadInstance); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		result, err := handlerFunc(ctx, msg, payloadInstance)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, err
		}

		logger.InfoContext(ctx, handlerName+" completed successfully", attr.CorrelationIDFromMsg(msg))
		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		return result, nil
	}
}
