// Package queuemetrics records background recompute queue activity.
package queuemetrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// QueueMetrics is implemented by the otel recorder and a test noop.
type QueueMetrics interface {
	RecordOperationAttempt(ctx context.Context, operationName, serviceName string)
	RecordOperationDuration(ctx context.Context, operationName, serviceName string, duration time.Duration)
	RecordOperationSuccess(ctx context.Context, operationName, serviceName string)
	RecordOperationFailure(ctx context.Context, operationName, serviceName string)

	RecordRecomputeScheduled(ctx context.Context)
	RecordRecomputeSkipped(ctx context.Context)
	RecordRecomputeRun(ctx context.Context, outcome string)
}

type otelMetrics struct {
	operationAttempts  metric.Int64Counter
	operationDuration  metric.Float64Histogram
	operationSuccesses metric.Int64Counter
	operationFailures  metric.Int64Counter

	recomputesScheduled metric.Int64Counter
	recomputesSkipped   metric.Int64Counter
	recomputeRuns       metric.Int64Counter
}

// New builds the otel-backed recorder on the given meter.
func New(meter metric.Meter) (QueueMetrics, error) {
	m := &otelMetrics{}
	var err error
	if m.operationAttempts, err = meter.Int64Counter("queue_operation_attempts_total"); err != nil {
		return nil, err
	}
	if m.operationDuration, err = meter.Float64Histogram("queue_operation_duration_seconds"); err != nil {
		return nil, err
	}
	if m.operationSuccesses, err = meter.Int64Counter("queue_operation_successes_total"); err != nil {
		return nil, err
	}
	if m.operationFailures, err = meter.Int64Counter("queue_operation_failures_total"); err != nil {
		return nil, err
	}
	if m.recomputesScheduled, err = meter.Int64Counter("queue_recomputes_scheduled_total"); err != nil {
		return nil, err
	}
	if m.recomputesSkipped, err = meter.Int64Counter("queue_recomputes_skipped_total"); err != nil {
		return nil, err
	}
	if m.recomputeRuns, err = meter.Int64Counter("queue_recompute_runs_total"); err != nil {
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

func (m *otelMetrics) RecordRecomputeScheduled(ctx context.Context) {
	m.recomputesScheduled.Add(ctx, 1)
}

func (m *otelMetrics) RecordRecomputeSkipped(ctx context.Context) {
	m.recomputesSkipped.Add(ctx, 1)
}

func (m *otelMetrics) RecordRecomputeRun(ctx context.Context, outcome string) {
	m.recomputeRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// NoOp discards all recordings.
type NoOp struct{}

func NewNoop() QueueMetrics { return &NoOp{} }

func (*NoOp) RecordOperationAttempt(context.Context, string, string)                 {}
func (*NoOp) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (*NoOp) RecordOperationSuccess(context.Context, string, string)                 {}
func (*NoOp) RecordOperationFailure(context.Context, string, string)                 {}
func (*NoOp) RecordRecomputeScheduled(context.Context)                               {}
func (*NoOp) RecordRecomputeSkipped(context.Context)                                 {}
func (*NoOp) RecordRecomputeRun(context.Context, string)                             {}
