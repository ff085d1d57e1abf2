package llm

import (
	"context"
	"fmt"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// NewProvider builds the configured backend wrapped as
// caller -> timeout -> retry -> instrumentation -> base.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger, rec Recorder) (Provider, error) {
	cfg = cfg.WithDefaults()

	var base Provider
	var err error
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	instrumented := WithInstrumentation(base, log, rec)
	retried := WithRetry(instrumented, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}
