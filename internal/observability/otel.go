package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"

	defaultSampleRatio = 0.1
)

type OtelConfig struct {
	Enabled     bool              `koanf:"enabled"`
	ServiceName string            `koanf:"service_name"`
	Environment string            `koanf:"environment"`
	Version     string            `koanf:"version"`
	Exporter    string            `koanf:"exporter"`
	Endpoint    string            `koanf:"endpoint"`
	Headers     map[string]string `koanf:"headers"`
	Insecure    bool              `koanf:"insecure"`
	SampleRatio float64           `koanf:"sample_ratio"`
}

// exporterKind resolves the configured exporter. A bare endpoint implies OTLP.
func (c OtelConfig) exporterKind() string {
	switch strings.ToLower(strings.TrimSpace(c.Exporter)) {
	case ExporterOTLP:
		return ExporterOTLP
	case ExporterStdout:
		return ExporterStdout
	}
	if strings.TrimSpace(c.Endpoint) != "" {
		return ExporterOTLP
	}
	return ExporterStdout
}

func (c OtelConfig) sampler() sdktrace.Sampler {
	r := c.SampleRatio
	if r <= 0 {
		r = defaultSampleRatio
	}
	if r > 1 {
		r = 1
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(r))
}

func noopShutdown(context.Context) error { return nil }

// InitOTel installs a global tracer provider plus W3C trace-context and
// baggage propagation. With tracing disabled nothing is installed and the
// returned shutdown does nothing. Exporter failures are logged and tracing
// continues without export.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	if !cfg.Enabled {
		return noopShutdown
	}
	if log == nil {
		log = logger.Nop()
	}
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "nexus"
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(name),
		semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
		attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
	))
	if err != nil {
		log.Warn("otel resource incomplete", "error", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithSampler(cfg.sampler()), sdktrace.WithResource(res)}
	kind := cfg.exporterKind()
	exp, err := newExporter(ctx, kind, cfg)
	if err != nil {
		log.Warn("otel exporter unavailable, spans will not be exported", "exporter", kind, "error", err)
	} else {
		opts = append(opts, sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(5*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	log.Info("otel tracing enabled", "service", name, "exporter", kind, "endpoint", cfg.Endpoint)
	return tp.Shutdown
}

func newExporter(ctx context.Context, kind string, cfg OtelConfig) (sdktrace.SpanExporter, error) {
	if kind == ExporterStdout {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	var opts []otlptracehttp.Option
	if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(ep))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	return exp, nil
}
