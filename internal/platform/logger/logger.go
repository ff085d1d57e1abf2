package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yungbote/nexus-backend/internal/platform/envutil"
)

const redacted = "[REDACTED]"

// Logger takes alternating key/value pairs. Values under credential-like
// keys are replaced and identity keys are hashed before encoding.
type Logger struct {
	z     *zap.SugaredLogger
	scrub scrubber
}

// New builds a JSON production logger, or a console logger at debug level
// for "development"/"dev". LOG_REDACTION_ENABLED=false turns scrubbing off
// and LOG_HASH_SALT salts identity hashes.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{z: z.Sugar(), scrub: scrubberFromEnv()}, nil
}

// NewWithCore wraps a zap core with scrubbing on. Tests pass an observer core.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{z: zap.New(core).Sugar(), scrub: scrubber{enabled: true}}
}

func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() { _ = l.z.Sync() }

func (l *Logger) Debug(msg string, kv ...any) { l.z.Debugw(msg, l.scrub.pairs(kv)...) }
func (l *Logger) Info(msg string, kv ...any)  { l.z.Infow(msg, l.scrub.pairs(kv)...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.z.Warnw(msg, l.scrub.pairs(kv)...) }
func (l *Logger) Error(msg string, kv ...any) { l.z.Errorw(msg, l.scrub.pairs(kv)...) }
func (l *Logger) Fatal(msg string, kv ...any) { l.z.Fatalw(msg, l.scrub.pairs(kv)...) }

func (l *Logger) With(kv ...any) *Logger {
	return &Logger{z: l.z.With(l.scrub.pairs(kv)...), scrub: l.scrub}
}

// Preview trims s and cuts it to max bytes for diagnostics.
func Preview(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

var (
	secretKeys   = []string{"password", "token", "authorization", "secret", "api_key", "apikey", "email"}
	identityKeys = []string{"user_id", "owner_id", "principal_id"}
)

type scrubber struct {
	enabled bool
	salt    string
}

func scrubberFromEnv() scrubber {
	return scrubber{
		enabled: envutil.Bool("LOG_REDACTION_ENABLED", true),
		salt:    envutil.String("LOG_HASH_SALT", ""),
	}
}

func (s scrubber) pairs(kv []any) []any {
	if !s.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]any, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		out[i+1] = s.value(strings.ToLower(key), out[i+1])
	}
	return out
}

func (s scrubber) value(key string, v any) any {
	for _, k := range secretKeys {
		if strings.Contains(key, k) {
			return redacted
		}
	}
	for _, k := range identityKeys {
		if strings.HasSuffix(key, k) {
			return s.hash(v)
		}
	}
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = s.value(strings.ToLower(k), inner)
		}
		return m
	case string:
		if bearerLike(t) {
			return redacted
		}
	}
	return v
}

func (s scrubber) hash(v any) string {
	raw := strings.TrimSpace(fmt.Sprint(v))
	if v == nil || raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:6])
}

// bearerLike matches three dot-separated base64 segments, i.e. a JWT.
func bearerLike(s string) bool {
	parts := strings.Split(strings.TrimPrefix(s, "Bearer "), ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}
