// Package rostermetrics records roster import and inference activity.
package rostermetrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RosterMetrics is implemented by the otel recorder and a test noop.
type RosterMetrics interface {
	RecordOperationAttempt(ctx context.Context, operationName, serviceName string)
	RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration)
	RecordOperationSuccess(ctx context.Context, operationName, serviceName string)
	RecordOperationFailure(ctx context.Context, operationName, serviceName string)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)

	RecordRowsImported(ctx context.Context, count int)
	RecordGenderInferred(ctx context.Context, gender string)
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

	rowsImported   metric.Int64Counter
	genderInferred metric.Int64Counter
}

// New builds the otel-backed recorder on the given meter.
func New(meter metric.Meter) (RosterMetrics, error) {
	m := &otelMetrics{}
	var err error
	if m.operationAttempts, err = meter.Int64Counter("roster_operation_attempts_total"); err != nil {
		return nil, err
	}
	if m.operationDuration, err = meter.Float64Histogram("roster_operation_duration_seconds"); err != nil {
		return nil, err
	}
	if m.operationSuccesses, err = meter.Int64Counter("roster_operation_successes_total"); err != nil {
		return nil, err
	}
	if m.operationFailures, err = meter.Int64Counter("roster_operation_failures_total"); err != nil {
		return nil, err
	}
	if m.handlerAttempts, err = meter.Int64Counter("roster_handler_attempts_total"); err != nil {
		return nil, err
	}
	if m.handlerDuration, err = meter.Float64Histogram("roster_handler_duration_seconds"); err != nil {
		return nil, err
	}
	if m.handlerSuccesses, err = meter.Int64Counter("roster_handler_successes_total"); err != nil {
		return nil, err
	}
	if m.handlerFailures, err = meter.Int64Counter("roster_handler_failures_total"); err != nil {
		return nil, err
	}
	if m.rowsImported, err = meter.Int64Counter("roster_rows_imported_total"); err != nil {
		return nil, err
	}
	if m.genderInferred, err = meter.Int64Counter("roster_gender_inferred_total"); err != nil {
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

func (m *otelMetrics) RecordRowsImported(ctx context.Context, count int) {
	m.rowsImported.Add(ctx, int64(count))
}

func (m *otelMetrics) RecordGenderInferred(ctx context.Context, gender string) {
	label := gender
	if label == "" {
		label = "unknown"
	}
	m.genderInferred.Add(ctx, 1, metric.WithAttributes(attribute.String("gender", label)))
}

// NoOp discards all recordings.
type NoOp struct{}

func NewNoop() RosterMetrics { return &NoOp{} }

func (*NoOp) RecordOperationAttempt(context.Context, string, string)                {}
func (*NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*NoOp) RecordOperationSuccess(context.Context, string, string)                {}
func (*NoOp) RecordOperationFailure(context.Context, string, string)                {}
func (*NoOp) RecordHandlerAttempt(context.Context, string)                          {}
func (*NoOp) RecordHandlerDuration(context.Context, string, time.Duration)          {}
func (*NoOp) RecordHandlerSuccess(context.Context, string)                          {}
func (*NoOp) RecordHandlerFailure(context.Context, string)                          {}
func (*NoOp) RecordRowsImported(context.Context, int)                               {}
func (*NoOp) RecordGenderInferred(context.Context, string)                          {}
