package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRedactsSensitiveKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core)

	log.Info("login", "email", "a@b.co", "password", "hunter22", "user_id", "u-1", "path", "/api/auth/token")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["email"] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", fields["email"])
	}
	if fields["password"] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", fields["password"])
	}
	uid, _ := fields["user_id"].(string)
	if !strings.HasPrefix(uid, "hash:") {
		t.Fatalf("user_id not hashed: %v", fields["user_id"])
	}
	if fields["path"] != "/api/auth/token" {
		t.Fatalf("path mangled: %v", fields["path"])
	}
}

func TestLoggerWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core).With("service", "RoadmapService")

	log.Warn("cycle detected", "roadmap_id", "r1")

	got := logs.FilterField(zap.String("service", "RoadmapService")).Len()
	if got != 1 {
		t.Fatalf("expected child logger field on entry, got %d matches", got)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("  short  ", 10); got != "short" {
		t.Fatalf("unexpected preview: %q", got)
	}
	got := Preview(strings.Repeat("x", 50), 10)
	if !strings.HasPrefix(got, "xxxxxxxxxx") || !strings.HasSuffix(got, "(truncated)") {
		t.Fatalf("unexpected truncated preview: %q", got)
	}
}

func TestLoggerScrubsNestedAndBearerValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core)

	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	log.Info("request", "header", "Bearer "+jwt, "meta", map[string]any{"api_key": "k", "model": "m"})

	fields := logs.All()[0].ContextMap()
	if fields["header"] != "[REDACTED]" {
		t.Fatalf("bearer value not redacted: %v", fields["header"])
	}
	meta, _ := fields["meta"].(map[string]any)
	if meta["api_key"] != "[REDACTED]" || meta["model"] != "m" {
		t.Fatalf("nested map not scrubbed: %v", meta)
	}
}

func TestNopKeepsFieldsUntouched(t *testing.T) {
	s := scrubber{}
	kv := []any{"password", "x"}
	if got := s.pairs(kv); got[1] != "x" {
		t.Fatalf("disabled scrubber changed value: %v", got)
	}
}
