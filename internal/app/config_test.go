package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9000
  cors_origins: ["https://a.example"]
db:
  driver: sqlite
  dsn: "file::memory:"
auth:
  jwt_secret: from-file
  token_ttl: 2h
llm:
  provider: mock
  retry:
    max_attempts: 5
`)
	t.Setenv("NEXUS_HTTP_PORT", "9100")
	t.Setenv("NEXUS_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("NEXUS_REDIS_CATALOG_TTL", "30s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Port != 9100 {
		t.Fatalf("env should override file port, got %d", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "https://a.example" {
		t.Fatalf("cors origins: %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour || cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("auth: %+v", cfg.Auth)
	}
	if cfg.LLM.OpenAI.APIKey != "sk-test" || cfg.LLM.Retry.MaxAttempts != 5 {
		t.Fatalf("llm: %+v", cfg.LLM)
	}
	if cfg.Redis.CatalogTTL != 30*time.Second {
		t.Fatalf("catalog ttl: %v", cfg.Redis.CatalogTTL)
	}
	if cfg.LLM.Timeout <= 0 || cfg.HTTP.ShutdownTimeout != 15*time.Second {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("NEXUS_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("NEXUS_DB_DRIVER", "sqlite")
	t.Setenv("NEXUS_LLM_PROVIDER", "mock")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTP.Port != 8080 || cfg.Seed.Path != "seed.yaml" {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "db: {driver: sqlite}\nllm: {provider: mock}\n"},
		{"postgres without dsn", "auth: {jwt_secret: x}\nllm: {provider: mock}\n"},
		{"provider without key", "auth: {jwt_secret: x}\ndb: {driver: sqlite}\nllm: {provider: openai}\n"},
		{"bad port", "http: {port: 70000}\nauth: {jwt_secret: x}\ndb: {driver: sqlite}\nllm: {provider: mock}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"NEXUS_HTTP_PORT":             "http.port",
		"NEXUS_HTTP_CORS_ORIGINS":     "http.cors_origins",
		"NEXUS_LLM_PROVIDER":          "llm.provider",
		"NEXUS_LLM_ANTHROPIC_API_KEY": "llm.anthropic.api_key",
		"NEXUS_LLM_RETRY_MAX_WAIT":    "llm.retry.max_wait",
		"NEXUS_OTEL_SERVICE_NAME":     "otel.service_name",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Fatalf("envKey(%q)=%q want %q", in, got, want)
		}
	}
}
