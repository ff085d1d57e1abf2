package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// Recorder receives one observation per backend call.
type Recorder interface {
	ObserveLLM(model, purpose, outcome string, d time.Duration, usage Usage)
}

// InstrumentedProvider logs, traces and meters every backend call.
type InstrumentedProvider struct {
	inner    Provider
	log      *logger.Logger
	recorder Recorder
	tracer   trace.Tracer
}

func WithInstrumentation(p Provider, log *logger.Logger, rec Recorder) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &InstrumentedProvider{
		inner:    p,
		log:      log.With("component", "llm"),
		recorder: rec,
		tracer:   otel.Tracer("nexus/llm"),
	}
}

func (p *InstrumentedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	ctx, span := p.tracer.Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("llm.model", p.inner.ModelID()),
		attribute.String("llm.purpose", purpose),
		attribute.Int("llm.messages", len(req.Messages)),
	))
	defer span.End()

	start := time.Now()
	resp, err := p.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	outcome := "ok"
	var usage Usage
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.log.Warn("generation failed",
			"model", p.inner.ModelID(),
			"purpose", purpose,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
	} else {
		usage = resp.Usage
		span.SetAttributes(
			attribute.Int("llm.input_tokens", usage.InputTokens),
			attribute.Int("llm.output_tokens", usage.OutputTokens),
		)
		p.log.Debug("generation complete",
			"model", resp.Model,
			"purpose", purpose,
			"duration_ms", elapsed.Milliseconds(),
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)
	}
	if p.recorder != nil {
		p.recorder.ObserveLLM(p.inner.ModelID(), purpose, outcome, elapsed, usage)
	}
	return resp, err
}

func (p *InstrumentedProvider) ModelID() string {
	return p.inner.ModelID()
}
