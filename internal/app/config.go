package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/yungbote/nexus-backend/internal/data/cache"
	"github.com/yungbote/nexus-backend/internal/data/db"
	"github.com/yungbote/nexus-backend/internal/observability"
	"github.com/yungbote/nexus-backend/internal/platform/envutil"
	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/redis"
)

const envPrefix = "NEXUS_"

type Config struct {
	Log   LogConfig                `koanf:"log"`
	HTTP  HTTPConfig               `koanf:"http"`
	DB    db.Config                `koanf:"db"`
	Redis redis.Config             `koanf:"redis"`
	Auth  AuthConfig               `koanf:"auth"`
	LLM   llm.Config               `koanf:"llm"`
	Otel  observability.OtelConfig `koanf:"otel"`
	Seed  SeedConfig               `koanf:"seed"`
}

type LogConfig struct {
	Mode string `koanf:"mode"`
}

type HTTPConfig struct {
	Port            int           `koanf:"port"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type SeedConfig struct {
	Path string `koanf:"path"`
}

func (c HTTPConfig) Address() string { return fmt.Sprintf(":%d", c.Port) }

// LoadConfig reads path (when it exists) and overlays NEXUS_* environment
// variables. An empty path falls back to NEXUS_CONFIG, then config.yaml.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = envutil.String("NEXUS_CONFIG", "config.yaml")
	}
	k := koanf.New(".")

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// nested lists the second-level sections whose keys carry one more dot.
var nested = map[string][]string{
	"llm": {"gemini", "openai", "anthropic", "openrouter", "retry"},
}

// envKey maps NEXUS_HTTP_CORS_ORIGINS to http.cors_origins and
// NEXUS_LLM_OPENAI_API_KEY to llm.openai.api_key.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, rest, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	for _, sub := range nested[section] {
		if field, found := strings.CutPrefix(rest, sub+"_"); found {
			return section + "." + sub + "." + field
		}
	}
	return section + "." + rest
}

func (c *Config) applyDefaults() {
	if c.Log.Mode == "" {
		c.Log.Mode = envutil.String("LOG_MODE", "production")
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 15 * time.Second
	}
	if c.DB.Driver == "" {
		c.DB.Driver = db.DriverPostgres
	}
	if c.Redis.CatalogTTL <= 0 {
		c.Redis.CatalogTTL = cache.DefaultTTL
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = time.Hour
	}
	c.LLM = c.LLM.WithDefaults()
	if c.Otel.ServiceName == "" {
		c.Otel.ServiceName = "nexus-backend"
	}
	if c.Seed.Path == "" {
		c.Seed.Path = "seed.yaml"
	}
}

func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.DB.Driver == db.DriverPostgres && strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("db.dsn is required for postgres")
	}
	return c.LLM.Validate()
}
