package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all generation backend configuration.
type Config struct {
	// Provider selects the backend: "gemini", "openai", "anthropic",
	// "openrouter" or "mock".
	Provider string `koanf:"provider"`

	Gemini     ProviderConfig `koanf:"gemini"`
	OpenAI     ProviderConfig `koanf:"openai"`
	Anthropic  ProviderConfig `koanf:"anthropic"`
	OpenRouter ProviderConfig `koanf:"openrouter"`

	Retry RetryConfig `koanf:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `koanf:"timeout"`

	MaxTokens int `koanf:"max_tokens"`
}

type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier"`
}

const openRouterBaseURL = "https://openrouter.ai/api/v1"

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: openRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout:   90 * time.Second,
		MaxTokens: 8192,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = d.Provider
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	fill := func(dst *ProviderConfig, src ProviderConfig) {
		if dst.Model == "" {
			dst.Model = src.Model
		}
		if dst.BaseURL == "" {
			dst.BaseURL = src.BaseURL
		}
	}
	fill(&c.Gemini, d.Gemini)
	fill(&c.OpenAI, d.OpenAI)
	fill(&c.Anthropic, d.Anthropic)
	fill(&c.OpenRouter, d.OpenRouter)
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = d.Retry.MaxAttempts
	}
	if c.Retry.InitialWait <= 0 {
		c.Retry.InitialWait = d.Retry.InitialWait
	}
	if c.Retry.MaxWait <= 0 {
		c.Retry.MaxWait = d.Retry.MaxWait
	}
	if c.Retry.Multiplier <= 0 {
		c.Retry.Multiplier = d.Retry.Multiplier
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	return c
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("llm.gemini.api_key is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("llm.openai.api_key is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("llm.anthropic.api_key is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("llm.openrouter.api_key is required for the openrouter provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown llm provider: %q", c.Provider)
	}
	return nil
}
