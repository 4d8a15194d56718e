// Package rulesetmetrics records rule configuration activity.
package rulesetmetrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RulesetMetrics is implemented by the otel recorder and a test noop.
type RulesetMetrics interface {
	RecordOperationAttempt(ctx context.Context, operationName, serviceName string)
	RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration)
	RecordOperationSuccess(ctx context.Context, operationName, serviceName string)
	RecordOperationFailure(ctx context.Context, operationName, serviceName string)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)

	RecordConfigUpserted(ctx context.Context)
	RecordValidationFailure(ctx context.Context, field string)
}

type otelMetrics struct {
	operationAttempts  metric.Int64Counter
	operationDuration  metric.Float64Histogram
	operationSuccesses metric.Int64Counter
	operationFailures  metric.Int64Counter

	handlerAttempts  metric.Int64Counter
	handlerDuration  metric.Float64Histogram
	handlerSuccesses metric.Int64Counter
	handlerFailures  metric.Int64Counter

	configUpserts      metric.Int64Counter
	validationFailures metric.Int64Counter
}

// New builds the otel-backed recorder on the given meter.
func New(meter metric.Meter) (RulesetMetrics, error) {
	m := &otelMetrics{}
	var err error
	if m.operationAttempts, err = meter.Int64Counter("ruleset_operation_attempts_total"); err != nil {
		return nil, err
	}
	if m.operationDuration, err = meter.Float64Histogram("ruleset_operation_duration_seconds"); err != nil {
		return nil, err
	}
	if m.operationSuccesses, err = meter.Int64Counter("ruleset_operation_successes_total"); err != nil {
		return nil, err
	}
	if m.operationFailures, err = meter.Int64Counter("ruleset_operation_failures_total"); err != nil {
		return nil, err
	}
	if m.handlerAttempts, err = meter.Int64Counter("ruleset_handler_attempts_total"); err != nil {
		return nil, err
	}
	if m.handlerDuration, err = meter.Float64Histogram("ruleset_handler_duration_seconds"); err != nil {
		return nil, err
	}
	if m.handlerSuccesses, err = meter.Int64Counter("ruleset_handler_successes_total"); err != nil {
		return nil, err
	}
	if m.handlerFailures, err = meter.Int64Counter("ruleset_handler_failures_total"); err != nil {
		return nil, err
	}
	if m.configUpserts, err = meter.Int64Counter("ruleset_config_upserts_total"); err != nil {
		return nil, err
	}
	if m.validationFailures, err = meter.Int64Counter("ruleset_validation_failures_total"); err != nil {
		return nil, err
	}
	return m, nil
}

func operationAttrs(operationName, serviceName string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("service", serviceName),
	)
}

func (m *otelMetrics) RecordOperationAttempt(ctx context.Context, operationName, serviceName string) {
	m.operationAttempts.Add(ctx, 1, operationAttrs(operationName, serviceName))
}

func (m *otelMetrics) RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration) {
	m.operationDuration.Record(ctx, duration.Seconds(), operationAttrs(operationName, serviceName))
}

func (m *otelMetrics) RecordOperationSuccess(ctx context.Context, operationName, serviceName string) {
	m.operationSuccesses.Add(ctx, 1, operationAttrs(operationName, serviceName))
}

func (m *otelMetrics) RecordOperationFailure(ctx context.Context, operationName, serviceName string) {
	m.operationFailures.Add(ctx, 1, operationAttrs(operationName, serviceName))
}

func (m *otelMetrics) RecordHandlerAttempt(ctx context.Context, handlerName string) {
	m.handlerAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("handler", handlerName)))
}

func (m *otelMetrics) RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration) {
	m.handlerDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("handler", handlerName)))
}

func (m *otelMetrics) RecordHandlerSuccess(ctx context.Context, handlerName string) {
	m.handlerSuccesses.Add(ctx, 1, metric.WithAttributes(attribute.String("handler", handlerName)))
}

func (m *otelMetrics) RecordHandlerFailure(ctx context.Context, handlerName string) {
	m.handlerFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("handler", handlerName)))
}

func (m *otelMetrics) RecordConfigUpserted(ctx context.Context) {
	m.configUpserts.Add(ctx, 1)
}

func (m *otelMetrics) RecordValidationFailure(ctx context.Context, field string) {
	m.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

// NoOp discards all recordings.
type NoOp struct{}

func NewNoop() RulesetMetrics { return &NoOp{} }

func (*NoOp) RecordOperationAttempt(context.Context, string, string)                 {}
func (*NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*NoOp) RecordOperationSuccess(context.Context, string, string)                 {}
func (*NoOp) RecordOperationFailure(context.Context, string, string)                 {}
func (*NoOp) RecordHandlerAttempt(context.Context, string)                           {}
func (*NoOp) RecordHandlerDuration(context.Context, string, time.Duration)           {}
func (*NoOp) RecordHandlerSuccess(context.Context, string)                           {}
func (*NoOp) RecordHandlerFailure(context.Context, string)                           {}
func (*NoOp) RecordConfigUpserted(context.Context)                                   {}
func (*NoOp) RecordValidationFailure(context.Context, string)                        {}
