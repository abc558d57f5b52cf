package otel

import (
	"context"

	"guesthouse/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens the spans that handlers, services and repositories nest.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type otelImpl struct {
	provider oteltrace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// New exports spans over OTLP/gRPC to EXTERNAL_OTEL_ENDPOINT. Without an
// endpoint, or when the exporter cannot be built, spans are dropped.
func New(cfg *config.Config) Otel {
	endpoint := cfg.External.Otel.Endpoint
	if endpoint == "" {
		log.Info().Msg("no otel endpoint configured, tracing disabled")

		return &otelImpl{provider: noop.NewTracerProvider()}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to create OTLP exporter, tracing disabled")

		return &otelImpl{provider: noop.NewTracerProvider()}
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.App.Name),
			semconv.DeploymentEnvironmentKey.String(cfg.Server.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	log.Info().Str("endpoint", endpoint).Msg("tracing enabled")

	return &otelImpl{provider: provider}
}
