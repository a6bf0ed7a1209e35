package otel

import (
	"context"
	"strings"

	"github.com/louisbranch/vttbridge/internal/platform/branding"
	"github.com/louisbranch/vttbridge/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans emitted by vttbridge packages.
const InstrumentationName = "github.com/louisbranch/vttbridge"

// settings are read from VTTBRIDGE_OTEL_* variables.
type settings struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
	// Enabled switches tracing off when set to "false", even with an endpoint.
	Enabled     string  `env:"OTEL_ENABLED"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Setup installs a global tracer provider exporting to the configured OTLP
// HTTP endpoint. Without an endpoint, or with tracing disabled, nothing is
// installed and the returned shutdown is a no-op. Callers defer shutdown to
// flush pending spans.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var cfg settings
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	if cfg.Endpoint == "" || strings.EqualFold(cfg.Enabled, "false") {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceNamespace(branding.Namespace),
	))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer returns the tracer used for vttbridge spans. It resolves the global
// provider on every call so spans follow a provider installed after startup.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
