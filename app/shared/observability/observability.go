// Package observability wires structured logging, tracing, and metrics for
// the whole service. Init is called exactly once from main; modules receive
// the resulting Observability value and pull what they need from it.
package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	eventbusmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/eventbus"
)

// Config controls what Init sets up. An empty OTLPEndpoint disables trace
// export; spans still flow through a noop provider so instrumented code
// needs no conditionals.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	MetricsAddress string
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRate     float64
}

// Provider holds the process-wide logging and tracing roots.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider

	shutdownFuncs []func(context.Context) error
}

// Registry holds the ready-to-inject instruments modules consume.
type Registry struct {
	Tracer          trace.Tracer
	Prometheus      *prometheus.Registry
	EventBusMetrics eventbusmetrics.EventBusMetrics
}

// Observability bundles the provider and registry.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer provider, and prometheus registry.
func Init(ctx context.Context, cfg Config) (*Observability, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	provider := &Provider{Logger: logger}

	if cfg.OTLPEndpoint != "" {
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}

		res := resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.Version),
			attribute.String("deployment.environment", cfg.Environment),
		)

		sampleRate := cfg.SampleRate
		if sampleRate <= 0 {
			sampleRate = 0.1
		}

		tracerProvider := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
		)
		otel.SetTracerProvider(tracerProvider)
		provider.TracerProvider = tracerProvider
		provider.shutdownFuncs = append(provider.shutdownFuncs, tracerProvider.Shutdown)
	} else {
		provider.TracerProvider = noop.NewTracerProvider()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Bridge OTel instruments onto the Prometheus registry so module metrics
	// show up on /metrics without a separate OTLP metrics pipeline.
	promExporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExporter))
	otel.SetMeterProvider(meterProvider)
	provider.shutdownFuncs = append(provider.shutdownFuncs, meterProvider.Shutdown)

	busMetrics, err := eventbusmetrics.New(otel.Meter("eventbus"))
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus metrics: %w", err)
	}

	return &Observability{
		Provider: provider,
		Registry: &Registry{
			Tracer:          provider.TracerProvider.Tracer(cfg.ServiceName),
			Prometheus:      registry,
			EventBusMetrics: busMetrics,
		},
	}, nil
}

// Shutdown flushes exporters. Safe to call on a partially initialized value.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.Provider == nil {
		return nil
	}
	var errs []error
	for _, fn := range o.Provider.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
