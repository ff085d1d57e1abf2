package redis

import (
	"context"
	"testing"

	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

func TestNewClientRequiresAddr(t *testing.T) {
	if (Config{Addr: "  "}).Enabled() {
		t.Fatalf("blank addr should be disabled")
	}
	if _, err := NewClient(context.Background(), Config{}, logger.Nop()); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}

func TestNewClientFailsOnUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(ctx, Config{Addr: "127.0.0.1:1"}, logger.Nop()); err == nil {
		t.Fatalf("expected ping failure")
	}
}
