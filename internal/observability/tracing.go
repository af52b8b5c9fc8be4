package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracerName is shared by every span the gateway starts itself.
const TracerName = "github.com/DanielPopoola/payments-gateway"

// InitTracing installs the global tracer provider and propagator. Without an
// OTLP endpoint spans are still created and sampled so span events remain
// visible to in-process processors, they are just not exported.
func InitTracing(ctx context.Context, cfg config.TelemetryConfig, env string, logger *slog.Logger) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(newResource(cfg, env))}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(cfg.OTLPEndpoint))
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logger.Info("exporting traces", "endpoint", cfg.OTLPEndpoint)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func newResource(cfg config.TelemetryConfig, env string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.environment", env),
	)
}
