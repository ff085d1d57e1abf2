package services

import (
	"context"
	"errors"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/modules/extraction"
	"github.com/yungbote/nexus-backend/internal/modules/prompts"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

const rawPreviewChars = 2000

// generator is the backend capability shared by every content service.
type generator struct {
	llm     llm.Provider
	log     *logger.Logger
	metrics *observability.Metrics
}

func (g generator) text(ctx context.Context, purpose string, req llm.Request) (string, error) {
	resp, err := g.llm.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return "", backendErr(err)
	}
	return resp.Text, nil
}

// freeform renders a prompt and returns the backend's text as-is.
func (g generator) freeform(ctx context.Context, name prompts.PromptName, in prompts.Input) (string, error) {
	p, err := prompts.Build(name, in)
	if err != nil {
		return "", domain.Validationf("%v", err)
	}
	return g.text(ctx, string(name), p.Request())
}

func backendErr(err error) error {
	if errors.Is(err, llm.ErrBackendUnavailable) {
		return err
	}
	return &llm.ErrProviderUnavailable{Err: err}
}

// structured pipes one backend call through extraction and the validator
// for kind. The raw text is logged on rejection and never returned.
func structured[T any](ctx context.Context, g generator, kind extraction.Kind, name prompts.PromptName, in prompts.Input, parse func(string) (T, error)) (T, error) {
	var zero T
	p, err := prompts.Build(name, in)
	if err != nil {
		return zero, domain.Validationf("%v", err)
	}
	raw, err := g.text(ctx, string(name), p.Request())
	if err != nil {
		return zero, err
	}
	out, err := parse(raw)
	if err != nil {
		reason := "malformed_output"
		if errors.Is(err, extraction.ErrSchemaViolation) {
			reason = "schema_violation"
		}
		g.metrics.IncExtractionFailure(string(kind), reason)
		g.log.Warn("backend output rejected",
			"kind", kind,
			"reason", reason,
			"error", err,
			"raw", logger.Preview(raw, rawPreviewChars),
		)
		return zero, err
	}
	return out, nil
}
